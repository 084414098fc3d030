package util

import (
	"sort"
	"strings"
)

// Fingerprint 將客製化選項轉為與key順序無關的標準編碼
// 同樣內容不同key順序必須得到同一個fingerprint，作為購物車line的識別依據
func Fingerprint(customization map[string]string) string {
	if len(customization) == 0 {
		return ""
	}

	keys := make([]string, 0, len(customization))
	for k := range customization {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for i, k := range keys {
		if i > 0 {
			builder.WriteByte('|')
		}
		builder.WriteString(escapeFingerprintPart(k))
		builder.WriteByte('=')
		builder.WriteString(escapeFingerprintPart(customization[k]))
	}
	return builder.String()
}

// 避免value內含分隔符號造成不同map編碼撞在一起
func escapeFingerprintPart(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "=", `\=`)
	return s
}
