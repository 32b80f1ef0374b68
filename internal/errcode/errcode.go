package errcode

// 错误码约定：
// - 0：无错误
// - 4xxx：调用方可修正的错误（校验失败、资源缺失、频率限制）
// - 5xxx：系统或外部依赖错误
const (
	OK               = 0
	InvalidRequest   = 4000
	ResourceMissing  = 4004
	PayloadTooLarge  = 4013
	Conflict         = 4009
	ValidationFailed = 4022
	RateLimited      = 4029
	SystemError      = 5000
	FeedUnavailable  = 5020
	EmailFailed      = 5021
	StoreUnavailable = 5030
)
