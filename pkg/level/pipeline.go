package level

import (
	"context"

	"github.com/decker502/arcade/pkg/ecs"
)

// CreateSystemsDispatcher 创建系统调度器，addSystems 负责注册系统
// 调度器绑定到全局工作池
func CreateSystemsDispatcher(pool *ecs.Pool, addSystems func(b *ecs.DispatcherBuilder)) (*ecs.Dispatcher, error) {
	builder := ecs.NewDispatcherBuilder()
	addSystems(builder)
	return builder.WithPool(pool).Build()
}

// CreateOptionalSystemsDispatcher 同 CreateSystemsDispatcher，
// 但 addSystems 没有注册任何系统时返回 nil（"没有调度器"），而不是空调度器
func CreateOptionalSystemsDispatcher(pool *ecs.Pool, addSystems func(b *ecs.DispatcherBuilder)) (*ecs.Dispatcher, error) {
	builder := ecs.NewDispatcherBuilder()
	addSystems(builder)
	if builder.Len() == 0 {
		return nil, nil
	}
	return builder.WithPool(pool).Build()
}

// RunSystems 如果状态有调度器，执行其中所有系统一次
func RunSystems(ctx context.Context, dispatcher *ecs.Dispatcher, deltaTime float64) error {
	if dispatcher == nil {
		return nil
	}
	return dispatcher.Dispatch(ctx, deltaTime)
}
