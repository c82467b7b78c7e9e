/*
 * @Description: 相机年代标识常量
 * @Author: 山岚
 * @Date: 2025-09-14 11:50:02
 * @LastEditTime: 2026-03-21 16:08:47
 * @LastEditors: 山岚
 */
package constant

// EraID 是相机年代标识。年代集合是封闭的，只有下面三个取值可以被构造。
type EraID string

const (
	// EraEarlyDigital 模拟 2000 年前后的第一代消费级数码相机
	EraEarlyDigital EraID = "early_digital"
	// EraCompactDigital 模拟 2003 年前后的卡片式数码相机
	EraCompactDigital EraID = "compact_digital"
	// EraSuperzoom 模拟 2005 年前后的长焦数码相机
	EraSuperzoom EraID = "superzoom"
)

// AllEras 按固定顺序列出全部年代标识，供校验和遍历使用。
var AllEras = []EraID{EraEarlyDigital, EraCompactDigital, EraSuperzoom}

// IsValidEra 判断给定字符串是否为已定义的年代标识。
func IsValidEra(s string) bool {
	for _, e := range AllEras {
		if string(e) == s {
			return true
		}
	}
	return false
}
