package domain

// Config mirrors ~/.vosh/config.yaml.
//
// Every value in here is fixed at startup: the loader reads the file once,
// hydrates defaults, and the resulting struct is passed by value into the
// component constructors. Nothing mutates it afterwards.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	Oracle              OracleSettings  `yaml:"oracle"`
	Voice               VoiceSettings   `yaml:"voice"`
	Confirm             ConfirmSettings `yaml:"confirm"`
	Session             SessionSettings `yaml:"session"`
	Notify              NotifySettings  `yaml:"notify"`
	History             HistorySettings `yaml:"history"`
}

// OracleSettings points at the language-model service and names the two
// models: one tuned for free-form conversation, one for command generation.
type OracleSettings struct {
	Endpoint            string `yaml:"endpoint"`
	ConversationalModel string `yaml:"conversational_model"`
	CommandModel        string `yaml:"command_model"`
	SocksProxy          string `yaml:"socks_proxy"`
	TimeoutSeconds      int    `yaml:"timeout"`
}

// VoiceSettings configures microphone capture, transcription and playback.
type VoiceSettings struct {
	WhisperModel  string `yaml:"whisper_model"`
	Language      string `yaml:"language"`
	EspeakVoice   string `yaml:"espeak_voice"`
	EspeakRate    int    `yaml:"espeak_rate"`
	CueSound      string `yaml:"cue_sound"`
	ListenSeconds int    `yaml:"listen_timeout"`
}

// ConfirmSettings holds the two gate timeouts. The detect gate ("should we
// even look at this") listens longer than the execute gate ("should we run
// the generated command").
type ConfirmSettings struct {
	DetectTimeoutSeconds  int `yaml:"detect_timeout"`
	ExecuteTimeoutSeconds int `yaml:"execute_timeout"`
}

// SessionSettings controls the outer loop.
type SessionSettings struct {
	CooldownSeconds int `yaml:"cooldown"`
}

// NotifySettings configures the best-effort side channels that mirror a
// candidate command to a companion device.
type NotifySettings struct {
	KDEConnect   bool   `yaml:"kdeconnect"`
	CompanionURL string `yaml:"companion_url"`
}

// HistorySettings toggles the local command-cycle audit log.
type HistorySettings struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}
