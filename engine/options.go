package engine

// options 是单次推荐请求的过滤参数。
type options struct {
	forbidden  []string
	allowed    []string
	hasAllowed bool
}

// Option 配置单次推荐请求。
type Option func(*options)

// WithForbidden 指定禁止出现在结果中的物品 ID 列表。
// 未知 ID 会被宽松跳过：禁止列表只会收缩候选集，陈旧 ID 无害，
// 调用方不必预先清洗自己的黑名单。
func WithForbidden(ids ...string) Option {
	return func(o *options) {
		o.forbidden = append(o.forbidden, ids...)
	}
}

// WithAllowed 把候选集限制在给定物品 ID 集合内。
// 一旦提供即生效：空列表意味着空候选集（返回空结果，不报错）。
// 未知 ID 与 WithForbidden 一样被宽松跳过。
func WithAllowed(ids ...string) Option {
	return func(o *options) {
		o.allowed = append(o.allowed, ids...)
		o.hasAllowed = true
	}
}

func applyOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
