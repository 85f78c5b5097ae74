package profile

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
)

// Bank is a per-bank profile from the banks file. All fields are optional;
// the agent derives defaults from the target name.
type Bank struct {
	// Notes are appended to generation prompts: statement quirks, date
	// formats, amount conventions the model should know about.
	Notes string `toml:"notes"`
	// PDF overrides the sample statement path.
	PDF string `toml:"pdf"`
	// CSV overrides the expected-output path.
	CSV string `toml:"csv"`
}

// Banks is the parsed banks file.
type Banks struct {
	Banks map[string]Bank `toml:"banks"`
}

// LoadBanks parses the TOML banks file at path. A missing file is not an
// error: the file is optional and an empty profile set is returned.
func LoadBanks(path string) (*Banks, error) {
	b := &Banks{Banks: map[string]Bank{}}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return b, nil
	}
	if _, err := toml.DecodeFile(path, b); err != nil {
		return nil, fmt.Errorf("parse banks file %s: %w", path, err)
	}
	if b.Banks == nil {
		b.Banks = map[string]Bank{}
	}
	return b, nil
}

// Get returns the profile for a bank, or a zero profile if none configured.
func (b *Banks) Get(name string) Bank {
	return b.Banks[name]
}

// Names returns the configured bank names, sorted.
func (b *Banks) Names() []string {
	names := make([]string, 0, len(b.Banks))
	for name := range b.Banks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
