package discord

import (
	"fmt"
	"strings"
)

var markdownReplacer = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	`~`, `\~`,
	`|`, `\|`,
	`>`, `\>`,
)

// EscapeMarkdown escapes Discord markdown so user-supplied text renders literally.
func EscapeMarkdown(s string) string {
	return markdownReplacer.Replace(s)
}

// Mention returns the user mention syntax for a snowflake.
func Mention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}
