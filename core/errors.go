package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Mapping 错误：VALIDATION_ERROR, UNKNOWN_USER, UNKNOWN_ITEM
//   - Split 错误：VALIDATION_ERROR
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
type DomainError struct {
	Code    string // 错误代码（如 "UNKNOWN_USER", "VALIDATION_ERROR"）
	Message string // 错误消息
	Module  string // 模块名称（如 "mapping", "engine", "split"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*DomainError)
	return ok
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	// ErrorCodeValidation 入参结构非法（长度不匹配、比例越界、重复 ID 等），
	// 一律在边界处检查，不做部分执行
	ErrorCodeValidation   = "VALIDATION_ERROR"
	ErrorCodeUnknownUser  = "UNKNOWN_USER"  // 用户 ID 不在映射中
	ErrorCodeUnknownItem  = "UNKNOWN_ITEM"  // 物品 ID 不在映射中
	ErrorCodeNotFound     = "NOT_FOUND"     // 资源不存在
	ErrorCodeNotSupported = "NOT_SUPPORTED" // 操作不支持
)

// 模块名称常量
const (
	ModuleMapping = "mapping" // ID 映射模块
	ModuleEngine  = "engine"  // 推荐引擎模块
	ModuleSparse  = "sparse"  // 稀疏矩阵模块
	ModuleSplit   = "split"   // 数据切分模块
	ModuleStore   = "store"   // 存储模块
)

// 通用错误检查函数

// IsValidation 检查错误是否为 VALIDATION_ERROR
func IsValidation(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeValidation
	}
	return false
}

// IsUnknownUser 检查错误是否为 UNKNOWN_USER
func IsUnknownUser(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUnknownUser
	}
	return false
}

// IsUnknownItem 检查错误是否为 UNKNOWN_ITEM
func IsUnknownItem(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUnknownItem
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}
