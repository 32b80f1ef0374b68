package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"folio/internal/content"
	"folio/internal/editor"
	"folio/internal/schema"
	"folio/internal/store"
)

type repoFunc func() (store.Repository, error)

func newSeedCmd(repo repoFunc) *cobra.Command {
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "为缺失的单例文档写入初始内容",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := repo()
			if err != nil {
				return err
			}
			written, err := editor.Seed(cmd.Context(), r, overwrite)
			if err != nil {
				return err
			}
			if len(written) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to seed")
				return nil
			}
			for _, c := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %s/%s\n", c, content.MainDocID)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "覆盖已存在的文档")
	return cmd
}

func newTechnologiesCmd(repo repoFunc) *cobra.Command {
	cmd := &cobra.Command{Use: "technologies", Short: "编辑技术分类"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "列出技术分类",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ed, err := loadTechnologies(cmd, repo)
			if err != nil {
				return err
			}
			printCategories(cmd.OutOrStdout(), ed.Items())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <category> <technology>...",
		Short: "新增一个技术分类",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := loadTechnologies(cmd, repo)
			if err != nil {
				return err
			}
			i := ed.AddItem()
			if err := ed.SetItem(i, content.TechnologyCategory{Name: args[0], Technologies: args[1:]}); err != nil {
				return err
			}
			saved, err := ed.Submit(cmd.Context())
			if err != nil {
				return describe(err)
			}
			printCategories(cmd.OutOrStdout(), saved)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <index>",
		Short: "按序号删除技术分类",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse index: %w", err)
			}
			ed, err := loadTechnologies(cmd, repo)
			if err != nil {
				return err
			}
			if err := ed.RemoveItem(index); err != nil {
				return err
			}
			saved, err := ed.Submit(cmd.Context())
			if err != nil {
				return describe(err)
			}
			printCategories(cmd.OutOrStdout(), saved)
			return nil
		},
	})
	return cmd
}

func loadTechnologies(cmd *cobra.Command, repo repoFunc) (*editor.ListEditor[content.TechnologyCategory], error) {
	r, err := repo()
	if err != nil {
		return nil, err
	}
	ed := editor.NewTechnologiesEditor(r)
	if err := ed.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return ed, nil
}

func printCategories(w io.Writer, items []content.TechnologyCategory) {
	for i, c := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i, c.Name, strings.Join(c.Technologies, ", "))
	}
}

func newSocialCmd(repo repoFunc) *cobra.Command {
	cmd := &cobra.Command{Use: "social", Short: "编辑社交平台链接"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "列出社交平台",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ed, err := loadSocial(cmd, repo)
			if err != nil {
				return err
			}
			printPlatforms(cmd.OutOrStdout(), ed.Items())
			return nil
		},
	})

	var icon string
	addCmd := &cobra.Command{
		Use:   "add <name> <url>",
		Short: "新增一个社交平台，order 取当前数量",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := loadSocial(cmd, repo)
			if err != nil {
				return err
			}
			i := ed.AddItem()
			item := ed.Items()[i]
			item.Name, item.URL, item.Icon = args[0], args[1], icon
			if item.Icon == "" {
				item.Icon = strings.ToLower(args[0])
			}
			if err := ed.SetItem(i, item); err != nil {
				return err
			}
			saved, err := ed.Submit(cmd.Context())
			if err != nil {
				return describe(err)
			}
			printPlatforms(cmd.OutOrStdout(), saved)
			return nil
		},
	}
	addCmd.Flags().StringVar(&icon, "icon", "", "图标名（默认取名称小写）")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <index>",
		Short: "按序号删除社交平台",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse index: %w", err)
			}
			ed, err := loadSocial(cmd, repo)
			if err != nil {
				return err
			}
			if err := ed.RemoveItem(index); err != nil {
				return err
			}
			saved, err := ed.Submit(cmd.Context())
			if err != nil {
				return describe(err)
			}
			printPlatforms(cmd.OutOrStdout(), saved)
			return nil
		},
	})
	return cmd
}

func loadSocial(cmd *cobra.Command, repo repoFunc) (*editor.ListEditor[content.Platform], error) {
	r, err := repo()
	if err != nil {
		return nil, err
	}
	ed := editor.NewSocialMediaEditor(r)
	if err := ed.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return ed, nil
}

func printPlatforms(w io.Writer, items []content.Platform) {
	for i, p := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\torder=%d\n", i, p.Name, p.URL, p.Order)
	}
}

func newProjectsCmd(repo repoFunc) *cobra.Command {
	cmd := &cobra.Command{Use: "projects", Short: "查看项目"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "列出全部项目",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := repo()
			if err != nil {
				return err
			}
			projects, err := editor.NewProjectEditor(r, nil, nil, nil).List(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range projects {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.ID, p.Title, strings.Join(p.TechStack, ", "))
			}
			return nil
		},
	})
	return cmd
}

// describe 将校验错误展开为逐字段的提示。
func describe(err error) error {
	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	lines := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		lines = append(lines, fmt.Sprintf("  %s: %s", f.Field, f.Message))
	}
	return fmt.Errorf("validation failed:\n%s", strings.Join(lines, "\n"))
}
