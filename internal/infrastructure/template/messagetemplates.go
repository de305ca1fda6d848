package template

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/discord"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
	"github.com/nitrodesk/nitrodesk/internal/shared/services/markdown"
)

// Kind names a message template.
type Kind string

const (
	KindExpiringSoon   Kind = "expiring_soon"
	KindExpiringUrgent Kind = "expiring_urgent"
	KindExpired        Kind = "expired"
	KindRenewed        Kind = "renewed"
	KindManual         Kind = "manual"
)

var allKinds = []Kind{KindExpiringSoon, KindExpiringUrgent, KindExpired, KindRenewed, KindManual}

//go:embed defaults.yaml
var defaultTemplates []byte

// MessageData is the binding available to every template.
type MessageData struct {
	Name      string
	DiscordID string
	Mention   string
	NitroType string
	DaysLeft  int
	HoursLeft int
	EndDate   string
	Message   string
}

// Renderer holds the parsed templates. Safe for concurrent use.
type Renderer struct {
	templates map[Kind]*template.Template
	markdown  markdown.MarkdownService
	title     cases.Caser
}

var funcs = template.FuncMap{
	"plural": func(n int, one, many string) string {
		if n == 1 || n == -1 {
			return one
		}
		return many
	},
	"upper": strings.ToUpper,
}

// NewRenderer parses the embedded defaults, then overlays any kinds found in
// the YAML file at path. An empty path or a missing file keeps the defaults.
func NewRenderer(path string, md markdown.MarkdownService, log logger.Interface) (*Renderer, error) {
	sources := make(map[Kind]string)
	if err := yaml.Unmarshal(defaultTemplates, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse default templates: %w", err)
	}

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			log.Warnw("templates file not found, using defaults", "path", path)
		case err != nil:
			return nil, fmt.Errorf("failed to read templates file: %w", err)
		default:
			overrides := make(map[Kind]string)
			if err := yaml.Unmarshal(content, &overrides); err != nil {
				return nil, fmt.Errorf("failed to parse templates file %s: %w", path, err)
			}
			for kind, src := range overrides {
				if !kind.valid() {
					log.Warnw("ignoring unknown template", "kind", kind, "path", path)
					continue
				}
				sources[kind] = src
			}
			log.Infow("message templates loaded", "path", path, "overrides", len(overrides))
		}
	}

	r := &Renderer{
		templates: make(map[Kind]*template.Template, len(sources)),
		markdown:  md,
		title:     cases.Title(language.English),
	}
	for _, kind := range allKinds {
		src, ok := sources[kind]
		if !ok {
			return nil, fmt.Errorf("template %q is not defined", kind)
		}
		tmpl, err := template.New(string(kind)).Funcs(funcs).Option("missingkey=error").Parse(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %q: %w", kind, err)
		}
		r.templates[kind] = tmpl
	}
	return r, nil
}

func (k Kind) valid() bool {
	for _, known := range allKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Data builds the binding for a customer view. Username and free text are
// stripped of markup and escaped so they cannot inject Discord formatting.
func (r *Renderer) Data(v customer.View, message string) MessageData {
	c := v.Customer
	name := discord.Mention(c.DiscordID())
	if username := r.markdown.StripMarkup(c.DiscordUsername()); username != "" {
		name = discord.EscapeMarkdown(username)
	}
	return MessageData{
		Name:      name,
		DiscordID: c.DiscordID(),
		Mention:   discord.Mention(c.DiscordID()),
		NitroType: r.title.String(string(c.NitroType())),
		DaysLeft:  v.DaysLeft,
		HoursLeft: v.HoursLeft,
		EndDate:   v.EndDate.UTC().Format("2006-01-02"),
		Message:   r.markdown.StripMarkup(message),
	}
}

// Render executes the template for kind.
func (r *Renderer) Render(kind Kind, data MessageData) (string, error) {
	tmpl, ok := r.templates[kind]
	if !ok {
		return "", fmt.Errorf("unknown template %q", kind)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", kind, err)
	}
	return strings.TrimSpace(sb.String()), nil
}

// KindFor picks the reminder template: urgent once hoursLeft is within the hour threshold.
func KindFor(hoursLeft, notifyBeforeHours int) Kind {
	if hoursLeft <= notifyBeforeHours {
		return KindExpiringUrgent
	}
	return KindExpiringSoon
}
