package task

import (
	"context"
	"errors"
	"sync"
)

// ErrPoolClosed 提交到已关闭的池
var ErrPoolClosed = errors.New("task: pool closed")

// Pool 有界工作池：远端 AI 调用统一经由此池执行，
// 使同时在途的请求数量有明确上限，而不是每次点击起一个裸协程。
type Pool struct {
	sem    chan struct{}
	mu     sync.Mutex
	wg     sync.WaitGroup
	closed bool
}

// NewPool 创建工作池，size <= 0 时默认 8
func NewPool(size int) *Pool {
	if size <= 0 {
		size = 8
	}
	return &Pool{sem: make(chan struct{}, size)}
}

// outcome 执行结果
type outcome struct {
	value interface{}
	err   error
}

// Future 一次提交的未完成结果
type Future struct {
	done chan struct{}
	out  outcome
}

// Await 等待任务完成或 ctx 取消
func (f *Future) Await(ctx context.Context) (interface{}, error) {
	select {
	case <-f.done:
		return f.out.value, f.out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Submit 提交任务。空闲槽位不足时在池外排队（阻塞发生在工作协程内，
// 调用方立即拿到 Future）。任务本身负责响应 ctx 取消。
func (p *Pool) Submit(ctx context.Context, fn func(ctx context.Context) (interface{}, error)) *Future {
	f := &Future{done: make(chan struct{})}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		f.out = outcome{err: ErrPoolClosed}
		close(f.done)
		return f
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		defer close(f.done)

		select {
		case p.sem <- struct{}{}:
			defer func() { <-p.sem }()
		case <-ctx.Done():
			f.out = outcome{err: ctx.Err()}
			return
		}

		value, err := fn(ctx)
		f.out = outcome{value: value, err: err}
	}()
	return f
}

// Run 提交并同步等待，便于 HTTP 处理器直接调用
func (p *Pool) Run(ctx context.Context, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	return p.Submit(ctx, fn).Await(ctx)
}

// Shutdown 拒绝新任务并等待在途任务结束
func (p *Pool) Shutdown() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.wg.Wait()
}
