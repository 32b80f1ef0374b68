package schema

import "strings"

// ContactMessage 是访客通过联系表单提交的内容。
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ValidateContactMessage 校验联系表单：全部必填，邮箱格式正确。
func ValidateContactMessage(in ContactMessage) (ContactMessage, error) {
	var c collector
	out := ContactMessage{
		Name:    c.required("name", in.Name, "name"),
		Email:   strings.TrimSpace(in.Email),
		Subject: c.required("subject", in.Subject, "subject"),
		Message: c.required("message", in.Message, "message"),
	}
	if !IsEmail(out.Email) {
		c.add("email", "enter a valid email address")
	}
	if err := c.err(); err != nil {
		return ContactMessage{}, err
	}
	return out, nil
}
