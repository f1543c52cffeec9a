package telegram

import "strings"

// markdownV2Escaper MarkdownV2 中需要转义的字符
var markdownV2Escaper = strings.NewReplacer(
	`\`, `\\`,
	"_", `\_`,
	"*", `\*`,
	"[", `\[`,
	"]", `\]`,
	"(", `\(`,
	")", `\)`,
	"~", `\~`,
	"`", "\\`",
	">", `\>`,
	"#", `\#`,
	"+", `\+`,
	"-", `\-`,
	"=", `\=`,
	"|", `\|`,
	"{", `\{`,
	"}", `\}`,
	".", `\.`,
	"!", `\!`,
)

// Escape 转义 MarkdownV2 特殊字符
func Escape(input string) string {
	return markdownV2Escaper.Replace(input)
}
