package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning carries the yaml-tunable knobs: the sticker pack identity stamped
// into delivered stickers and the encoder quality settings. The file is
// optional; every field has a working default.
type Tuning struct {
	Sticker struct {
		Author string `yaml:"author"`
		Pack   string `yaml:"pack"`
	} `yaml:"sticker"`
	Encoder struct {
		StaticQuality   int `yaml:"static_quality"`
		AnimatedQuality int `yaml:"animated_quality"`
	} `yaml:"encoder"`
}

func LoadTuning(path string) (*Tuning, error) {
	tuning := &Tuning{}

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		// Set default values
		tuning.Sticker.Author = "Bot"
		tuning.Sticker.Pack = "Sticker"
		tuning.Encoder.StaticQuality = 60
		tuning.Encoder.AnimatedQuality = 65
		return tuning, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(file, tuning)
	if err != nil {
		return nil, err
	}

	return tuning, nil
}
