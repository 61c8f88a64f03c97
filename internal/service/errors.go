package service

import "errors"

// 服务层错误分级
// 上游业务错误 (shopee.APIError) 原样向上透传，这里只定义本层语义
var (
	// ErrTokenExpired refresh_token 也已过期，只能重新走授权流程
	ErrTokenExpired = errors.New("店铺凭证已过期")

	// ErrRefreshFailed 刷新请求本身失败，存量凭证保持原状
	ErrRefreshFailed = errors.New("凭证刷新失败")

	// ErrSyncInProgress 同一店铺的同步任务尚未结束
	ErrSyncInProgress = errors.New("该店铺同步任务进行中")

	// ErrComputation 费率与利润率之和不小于 1，定价无解
	ErrComputation = errors.New("定价计算无解: 费率与利润率之和不小于 1")

	// ErrNoCostBasis 没有成本价，不产生推荐价 (调用方应留空而不是填 0)
	ErrNoCostBasis = errors.New("缺少成本价，无法推荐定价")
)
