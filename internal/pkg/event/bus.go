/*
 * @Description: 进程内事件总线（照片生命周期事件）
 * @Author: 山岚
 * @Date: 2025-09-23 11:02:17
 * @LastEditTime: 2026-05-09 16:20:08
 * @LastEditors: 山岚
 */
package event

import (
	evbus "github.com/asaskevich/EventBus"
)

// Topic 是事件主题类型
type Topic string

const (
	// PhotoPersisted 在照片落盘并建立索引之后发布，载荷为照片数据库 ID。
	PhotoPersisted Topic = "photo:persisted"
	// PhotoDeleted 在照片被删除之后发布，载荷为照片数据库 ID。
	PhotoDeleted Topic = "photo:deleted"
)

// Bus 包装底层事件总线，把主题收敛为本包定义的常量。
type Bus struct {
	bus evbus.Bus
}

// NewBus 创建事件总线。
func NewBus() *Bus {
	return &Bus{bus: evbus.New()}
}

// Publish 同步发布事件。
func (b *Bus) Publish(topic Topic, args ...interface{}) {
	b.bus.Publish(string(topic), args...)
}

// SubscribeAsync 异步订阅事件，每个事件在独立 goroutine 中处理。
func (b *Bus) SubscribeAsync(topic Topic, fn interface{}) error {
	return b.bus.SubscribeAsync(string(topic), fn, false)
}

// WaitAsync 等待所有异步回调完成，优雅停机时调用。
func (b *Bus) WaitAsync() {
	b.bus.WaitAsync()
}
