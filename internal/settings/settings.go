package settings

import (
	"fmt"
	"os"

	ini "gopkg.in/ini.v1"
)

// Settings are the persisted speech-service credentials. They live in a flat
// INI file next to the binary so a run can be started without retyping the
// key and region every time.
type Settings struct {
	SpeechKey string
	Region    string
}

// Load reads settings from path. A missing file is not an error; it yields
// empty settings so the surface can prompt for fresh values.
func Load(path string) (*Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Settings{}, nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	sec := f.Section(ini.DefaultSection)
	return &Settings{
		SpeechKey: sec.Key("SpeechKey").String(),
		Region:    sec.Key("Region").String(),
	}, nil
}

// Save writes settings to path, replacing any previous contents.
func (s *Settings) Save(path string) error {
	f := ini.Empty()
	sec := f.Section(ini.DefaultSection)
	sec.Key("SpeechKey").SetValue(s.SpeechKey)
	sec.Key("Region").SetValue(s.Region)

	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
