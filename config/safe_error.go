package config

// SafeErrorMessage release 模式下不向客户端暴露内部错误详情
// err 为 nil 或生产模式时返回 fallback，开发模式返回原始错误文本
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
