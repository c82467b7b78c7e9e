/*
 * @Description:
 * @Author: 山岚
 * @Date: 2025-10-15 08:40:02
 * @LastEditTime: 2026-07-19 23:11:20
 * @LastEditors: 山岚
 */
package main

import (
	"log"

	"github.com/retro-tech/retrosnap/cmd/server"
)

func main() {
	// 调用位于 cmd/server 包中的 NewApp 函数来构建整个应用
	app, cleanup, err := server.NewApp()
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}

	// 使用 defer 来确保 cleanup 函数在 main 退出时被调用
	defer cleanup()

	// 确保后台任务在程序退出时被停止
	defer app.Stop()

	// 启动应用
	if err := app.Run(); err != nil {
		log.Fatalf("应用运行失败: %v", err)
	}
}
