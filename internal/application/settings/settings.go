// Package settings defines application-level configuration data.
package settings

import (
	"time"

	"github.com/tesso57/tektune/internal/domain/article"
)

// KeyMapConfig defines the configuration for keybindings.
type KeyMapConfig struct {
	Up         string `yaml:"up" kong:"help='Up key',default='k'"`
	Down       string `yaml:"down" kong:"help='Down key',default='j'"`
	UpPage     string `yaml:"up_page" kong:"help='Page Up key',default='ctrl+u'"`
	DownPage   string `yaml:"down_page" kong:"help='Page Down key',default='ctrl+d'"`
	Open       string `yaml:"open" kong:"help='Open article key',default='enter'"`
	Quit       string `yaml:"quit" kong:"help='Quit key',default='q'"`
	Add        string `yaml:"add" kong:"help='Add article key',default='a'"`
	Edit       string `yaml:"edit" kong:"help='Edit article key',default='e'"`
	Delete     string `yaml:"delete" kong:"help='Delete article key',default='d'"`
	Refresh    string `yaml:"refresh" kong:"help='Refresh list key',default='r'"`
	NextTarget string `yaml:"next_target" kong:"help='Focus next code block or link key',default='tab'"`
	Copy       string `yaml:"copy" kong:"help='Copy focused code block key',default='c'"`
	OpenLink   string `yaml:"open_link" kong:"help='Open focused link key',default='o'"`
}

// EditorKeyMapConfig defines the configuration for editor keybindings.
type EditorKeyMapConfig struct {
	Save          string `yaml:"save" kong:"help='Save key',default='ctrl+s'"`
	Close         string `yaml:"close" kong:"help='Close editor key',default='esc'"`
	SwitchField   string `yaml:"switch_field" kong:"help='Switch between title and body key',default='ctrl+t'"`
	Mark          string `yaml:"mark" kong:"help='Start or clear selection key',default='ctrl+@'"`
	H1            string `yaml:"h1" kong:"name='h1',help='Heading 1 key',default='alt+1'"`
	H2            string `yaml:"h2" kong:"name='h2',help='Heading 2 key',default='alt+2'"`
	H3            string `yaml:"h3" kong:"name='h3',help='Heading 3 key',default='alt+3'"`
	Bold          string `yaml:"bold" kong:"help='Bold key',default='alt+b'"`
	Italic        string `yaml:"italic" kong:"help='Italic key',default='alt+i'"`
	Underline     string `yaml:"underline" kong:"help='Underline key',default='alt+u'"`
	Code          string `yaml:"code" kong:"help='Code block key',default='alt+c'"`
	Warning       string `yaml:"warning" kong:"help='Warning box key',default='alt+w'"`
	Link          string `yaml:"link" kong:"help='Link key',default='alt+k'"`
	OrderedList   string `yaml:"ordered_list" kong:"help='Ordered list key',default='alt+o'"`
	UnorderedList string `yaml:"unordered_list" kong:"help='Unordered list key',default='alt+l'"`
	Image         string `yaml:"image" kong:"help='Insert image key',default='alt+p'"`
	Quote         string `yaml:"quote" kong:"help='Quote key',default='alt+q'"`
	HR            string `yaml:"hr" kong:"help='Horizontal rule key',default='alt+h'"`
}

// ThemeConfig defines the color theme configuration.
type ThemeConfig struct {
	Accent   string `yaml:"accent" kong:"help='Accent color',default='205'"`
	Muted    string `yaml:"muted" kong:"help='Muted text color',default='240'"`
	Border   string `yaml:"border" kong:"help='Inactive border color',default='63'"`
	Markdown string `yaml:"markdown" kong:"help='Markdown style (dark/light/notty/dracula/tokyo-night/pink/ascii)',default='dark'"`
}

// APIConfig defines how to reach the article store.
type APIConfig struct {
	BaseURL        string `yaml:"base_url" kong:"help='Article API base URL',default='http://localhost:3600/api'"`
	TimeoutSeconds int    `yaml:"timeout_seconds" kong:"help='Request timeout in seconds (0 disables)',default='30'"`
	UserAgent      string `yaml:"user_agent" kong:"help='User-Agent header',default='TekTune/1.0'"`
}

// Settings represents the application configuration.
type Settings struct {
	API                   APIConfig          `yaml:"api" kong:"embed,prefix='api.'"`
	ContentFormat         string             `yaml:"content_format" kong:"help='Persisted content format (html/markdown)',default='html',enum='html,markdown'"`
	ConfirmDeleteTwice    bool               `yaml:"confirm_delete_twice" kong:"help='Ask twice before deleting an article',default='false'"`
	ImageScopePlaceholder string             `yaml:"image_scope_placeholder" kong:"help='Upload scope used before an article is selected'"`
	StatusSeconds         int                `yaml:"status_seconds" kong:"help='Seconds a status message stays visible',default='3'"`
	KeyMap                KeyMapConfig       `yaml:"keymap" kong:"embed,prefix='keymap.'"`
	EditorKeyMap          EditorKeyMapConfig `yaml:"editor_keymap" kong:"embed,prefix='editor-keymap.'"`
	Theme                 ThemeConfig        `yaml:"theme" kong:"embed,prefix='theme.'"`
	LogFile               string             `yaml:"log_file" kong:"help='Debug log file path'"`
}

// Format returns the configured content format, falling back to HTML.
func (s Settings) Format() article.Format {
	f, err := article.ParseFormat(s.ContentFormat)
	if err != nil {
		return article.FormatHTML
	}
	return f
}

// Timeout returns the per-request timeout. Zero disables it.
func (s Settings) Timeout() time.Duration {
	if s.API.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(s.API.TimeoutSeconds) * time.Second
}

// StatusDuration returns how long a status message stays visible.
func (s Settings) StatusDuration() time.Duration {
	if s.StatusSeconds <= 0 {
		return 0
	}
	return time.Duration(s.StatusSeconds) * time.Second
}
