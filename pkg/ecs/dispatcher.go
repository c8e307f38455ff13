package ecs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// System 是每帧执行一次的系统
// 系统在构造时持有它需要的数据（如 *EntityManager），Update 只接收帧间隔
type System interface {
	Update(deltaTime float64)
}

// Initializer 是可选接口，Dispatcher 构建完成时调用一次 Setup
type Initializer interface {
	Setup()
}

// Accessor 是可选接口，系统通过它声明自己读写的组件集合
// 未实现 Accessor 且注册时未显式给出 Access 的系统按独占处理
type Accessor interface {
	Access() Access
}

// Access 描述系统对共享数据的访问集合
type Access struct {
	Reads  []string // 只读的组件/资源名
	Writes []string // 会修改的组件/资源名
	// Structural 表示系统会创建/删除实体或增删组件，与任何系统都冲突
	Structural bool
}

// Exclusive 返回与所有系统冲突的访问集合
func Exclusive() Access {
	return Access{Structural: true}
}

// conflicts 判断两个访问集合能否在同一阶段并行
// 写-写、读-写同名数据即冲突
func (a Access) conflicts(b Access) bool {
	if a.Structural || b.Structural {
		return true
	}
	for _, w := range a.Writes {
		if contains(b.Writes, w) || contains(b.Reads, w) {
			return true
		}
	}
	for _, w := range b.Writes {
		if contains(a.Reads, w) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var (
	// ErrDuplicateSystem 表示同名系统被注册了两次
	ErrDuplicateSystem = errors.New("duplicate system name")
	// ErrUnknownDependency 表示依赖的系统尚未注册（依赖必须先于依赖者注册）
	ErrUnknownDependency = errors.New("unknown system dependency")
	// ErrNilSystem 表示注册了 nil 系统
	ErrNilSystem = errors.New("nil system")
)

// Pool 是全局共享的系统工作池，限制同一阶段并行执行的系统数量
type Pool struct {
	workers int
}

// NewPool 创建工作池，workers <= 0 时使用 GOMAXPROCS
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Workers 返回工作池大小
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workers
}

type systemDesc struct {
	name   string
	system System
	deps   []string
	access Access
}

// DispatcherBuilder 收集系统描述并构建 Dispatcher
//
// 注册错误会被记录，在 Build 时统一返回，便于链式调用：
//
//	d, err := ecs.NewDispatcherBuilder().
//	    With(move, "move").
//	    With(score, "score", "move").
//	    WithPool(pool).
//	    Build()
type DispatcherBuilder struct {
	descs []systemDesc
	index map[string]int
	pool  *Pool
	err   error
}

// NewDispatcherBuilder 创建空的 DispatcherBuilder
func NewDispatcherBuilder() *DispatcherBuilder {
	return &DispatcherBuilder{
		descs: make([]systemDesc, 0),
		index: make(map[string]int),
	}
}

// With 注册系统，访问集合取自系统的 Access()（未实现则独占）
// deps 中的系统必须已注册，当前系统在它们之后执行
func (b *DispatcherBuilder) With(system System, name string, deps ...string) *DispatcherBuilder {
	access := Exclusive()
	if a, ok := system.(Accessor); ok {
		access = a.Access()
	}
	return b.WithAccess(system, name, access, deps...)
}

// WithAccess 注册系统并显式指定访问集合
func (b *DispatcherBuilder) WithAccess(system System, name string, access Access, deps ...string) *DispatcherBuilder {
	if b.err != nil {
		return b
	}
	if system == nil {
		b.err = fmt.Errorf("register %q: %w", name, ErrNilSystem)
		return b
	}
	if _, exists := b.index[name]; exists {
		b.err = fmt.Errorf("register %q: %w", name, ErrDuplicateSystem)
		return b
	}
	for _, dep := range deps {
		if _, ok := b.index[dep]; !ok {
			b.err = fmt.Errorf("register %q depends on %q: %w", name, dep, ErrUnknownDependency)
			return b
		}
	}
	b.index[name] = len(b.descs)
	b.descs = append(b.descs, systemDesc{
		name:   name,
		system: system,
		deps:   append([]string(nil), deps...),
		access: access,
	})
	return b
}

// WithPool 绑定工作池，未绑定时所有系统顺序执行
func (b *DispatcherBuilder) WithPool(pool *Pool) *DispatcherBuilder {
	b.pool = pool
	return b
}

// Len 返回已注册的系统数量
func (b *DispatcherBuilder) Len() int {
	return len(b.descs)
}

// Build 把系统分配到阶段并调用各系统的 Setup
//
// 分配规则：系统所在阶段晚于它的所有依赖，
// 也晚于先注册且与它访问冲突的系统；同一阶段的系统互不冲突，可以并行。
func (b *DispatcherBuilder) Build() (*Dispatcher, error) {
	if b.err != nil {
		return nil, b.err
	}

	stageOf := make([]int, len(b.descs))
	stages := make([][]systemDesc, 0)

	for i, desc := range b.descs {
		stage := 0
		for _, dep := range desc.deps {
			if s := stageOf[b.index[dep]] + 1; s > stage {
				stage = s
			}
		}
		for j := 0; j < i; j++ {
			if b.descs[j].access.conflicts(desc.access) {
				if s := stageOf[j] + 1; s > stage {
					stage = s
				}
			}
		}
		stageOf[i] = stage
		for len(stages) <= stage {
			stages = append(stages, nil)
		}
		stages[stage] = append(stages[stage], desc)
	}

	for _, desc := range b.descs {
		if init, ok := desc.system.(Initializer); ok {
			init.Setup()
		}
	}

	d := &Dispatcher{stages: stages, pool: b.pool}
	log.Printf("[Dispatcher] Built %d systems in %d stages: %s", len(b.descs), len(stages), d.describe())
	return d, nil
}

// Dispatcher 按阶段执行系统
type Dispatcher struct {
	stages [][]systemDesc
	pool   *Pool
}

// Dispatch 执行一帧：阶段按顺序执行，阶段内的系统在工作池上并行
//
// 返回：
//   - error: ctx 被取消时返回 ctx.Err()，剩余阶段不再执行
func (d *Dispatcher) Dispatch(ctx context.Context, deltaTime float64) error {
	for _, stage := range d.stages {
		if err := ctx.Err(); err != nil {
			return err
		}

		if len(stage) == 1 || d.pool.Workers() == 1 {
			for _, desc := range stage {
				desc.system.Update(deltaTime)
			}
			continue
		}

		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(d.pool.Workers())
		for _, desc := range stage {
			system := desc.system
			g.Go(func() error {
				system.Update(deltaTime)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	return nil
}

// Stages 返回各阶段的系统名，用于调试和测试
func (d *Dispatcher) Stages() [][]string {
	out := make([][]string, len(d.stages))
	for i, stage := range d.stages {
		names := make([]string, len(stage))
		for j, desc := range stage {
			names[j] = desc.name
		}
		out[i] = names
	}
	return out
}

func (d *Dispatcher) describe() string {
	parts := make([]string, 0, len(d.stages))
	for _, names := range d.Stages() {
		parts = append(parts, "["+strings.Join(names, ", ")+"]")
	}
	return strings.Join(parts, " -> ")
}
