//    VerseAnalytics
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"dario.cat/mergo"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/e-gun/VerseAnalytics/internal/mm"
	"github.com/e-gun/VerseAnalytics/internal/str"
	"github.com/e-gun/VerseAnalytics/internal/vv"
	"github.com/titanous/json5"
	"os"
	"path/filepath"
	"slices"
)

var (
	Msg = mm.NewMessageMaker()
)

// LookForConfigFile - the first config file that exists: the explicit path, then ./, then ~/.config/
func LookForConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}

	candidates := []string{filepath.Join(vv.CONFIGLOCATION, vv.CONFIGBASIC)}
	if h, e := os.UserHomeDir(); e == nil {
		candidates = append(candidates, fmt.Sprintf(vv.CONFIGALTAPTH, h)+vv.CONFIGBASIC)
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
		if _, err := os.Stat(localname(c)); err == nil {
			return c
		}
	}
	return ""
}

// ConfigAtLaunch - defaults, overlaid by whatever config file can be found
func ConfigAtLaunch(explicit string) (*str.CurrentConfiguration, error) {
	const (
		MSG1 = "ConfigAtLaunch(): no configuration file found; using built-in defaults"
		MSG2 = "ConfigAtLaunch(): '%s' loaded"
	)

	fn := LookForConfigFile(explicit)
	if fn == "" {
		Msg.TMI(MSG1)
		return BuildDefaultConfig(), nil
	}

	cfg, err := ReadConfig(fn)
	if err != nil {
		return nil, err
	}
	Msg.TMI(fmt.Sprintf(MSG2, fn))
	return cfg, nil
}

// ReadConfig - merge "<name>.<ext>" and then "<name>.local.<ext>" over the defaults
func ReadConfig(name string) (*str.CurrentConfiguration, error) {
	const (
		FAIL1 = "ReadConfig() could not parse '%s': %w"
		FAIL2 = "ReadConfig() could not merge '%s': %w"
		MSG1  = "ReadConfig() merging local overrides from '%s'"
	)

	cfg := BuildDefaultConfig()
	found := false

	base, err := os.ReadFile(name)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if len(base) > 0 {
		// unmarshal straight onto the defaults: keys absent from the file keep their default values
		if err = json5.Unmarshal(base, cfg); err != nil {
			return nil, fmt.Errorf(FAIL1, name, err)
		}
		found = true
	}

	ln := localname(name)
	local, err := os.ReadFile(ln)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if len(local) > 0 {
		// a local override can change a value but not blank it
		var override str.CurrentConfiguration
		if err = json5.Unmarshal(local, &override); err != nil {
			return nil, fmt.Errorf(FAIL1, ln, err)
		}
		if err = mergo.Merge(cfg, override, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf(FAIL2, ln, err)
		}
		Msg.PEEK(fmt.Sprintf(MSG1, ln))
		found = true
	}

	if !found {
		return nil, os.ErrNotExist
	}

	return cfg, Validate(cfg)
}

// localname - "va-conf.json" --> "va-conf.local.json"
func localname(name string) string {
	ext := filepath.Ext(name)
	return name[:len(name)-len(ext)] + ".local" + ext
}

// Validate - reject settings that no stage can work with
func Validate(cfg *str.CurrentConfiguration) error {
	const (
		FAIL = "%w: %s"
	)
	switch {
	case cfg.Source.Chapters < 1:
		return fmt.Errorf(FAIL, str.ErrInvalidInput, "Source.Chapters must be at least 1")
	case cfg.Topics.K < 1:
		return fmt.Errorf(FAIL, str.ErrInvalidInput, "Topics.K must be at least 1")
	case cfg.Topics.Engine != "gibbs" && cfg.Topics.Engine != "variational":
		return fmt.Errorf(FAIL, str.ErrInvalidInput, "Topics.Engine must be 'gibbs' or 'variational'")
	case cfg.Topics.HeldOutFrac <= 0 || cfg.Topics.HeldOutFrac >= 1:
		return fmt.Errorf(FAIL, str.ErrInvalidInput, "Topics.HeldOutFrac must lie between 0 and 1")
	case cfg.Topics.HeldOutProp <= 0 || cfg.Topics.HeldOutProp >= 1:
		return fmt.Errorf(FAIL, str.ErrInvalidInput, "Topics.HeldOutProp must lie between 0 and 1")
	case !slices.Contains([]string{"none", "sqlite", "postgres"}, cfg.Vault.Kind):
		return fmt.Errorf(FAIL, str.ErrInvalidInput, "Vault.Kind must be 'none', 'sqlite' or 'postgres'")
	}
	return nil
}

// BuildDefaultConfig - return a CurrentConfiguration filled out with various default values
func BuildDefaultConfig() *str.CurrentConfiguration {
	var c str.CurrentConfiguration
	c.BlackAndWhite = vv.BLACKANDWHITE
	c.ChtHt = vv.CHARTHEIGHT
	c.ChtWd = vv.CHARTWIDTH
	c.LabelsFile = ""
	c.LogLevel = vv.DEFAULTGOLOGLEVEL
	c.OutputDir = vv.DEFAULTOUTPUTDIR
	c.ProfileCPU = false
	c.ProfileMEM = false
	c.Refresh = false

	c.Source = str.SourceConfig{
		Boilerplate:   slices.Clone(vv.BOILERPLATE),
		Chapters:      vv.CHAPTERS,
		RespectRobots: vv.RESPECTROBOTS,
		Selector:      vv.DEFAULTSELECTOR,
		TimeoutSecs:   vv.FETCHTIMEOUT,
		URLTemplate:   vv.DEFAULTSOURCEURL,
		UserAgent:     vv.DEFAULTUSERAGENT,
	}

	c.Sentiment = str.SentimentConfig{
		AmpWeight:       vv.SENTAMPWEIGHT,
		DeAmpWeight:     vv.SENTDEAMPWEIGHT,
		ExcludeNoMatch:  vv.SENTEXCLNOMATCH,
		LengthNormalize: vv.SENTLENGTHNORM,
		NegAfter:        vv.SENTNEGAFTER,
		NegBefore:       vv.SENTNEGBEFORE,
	}

	c.Topics = str.TopicConfig{
		Alpha:          vv.LDAALPHA,
		Beta:           vv.LDABETA,
		CoherenceTerms: vv.LDACOHERENCETOP,
		Engine:         vv.LDAENGINE,
		HeldOutFrac:    vv.LDAHELDOUTFRAC,
		HeldOutProp:    vv.LDAHELDOUTPROP,
		Iterations:     vv.LDAITER,
		K:              vv.LDATOPICS,
		MinDocFreq:     vv.LDAMINDOCFREQ,
		SearchKs:       slices.Clone(vv.LDASEARCHKS),
		Seed:           vv.LDASEED,
		TopN:           vv.LDATOPN,
	}

	c.Vault = str.VaultConfig{
		File:  vv.VAULTFILE,
		Kind:  vv.VAULTKIND,
		Table: vv.VAULTTABLE,
		PGLogin: str.PostgresLogin{
			Host:   vv.DEFAULTPSQLHOST,
			Port:   vv.DEFAULTPSQLPORT,
			User:   vv.DEFAULTPSQLUSER,
			Pass:   "",
			DBName: vv.DEFAULTPSQLDB,
		},
	}

	return &c
}

// WriteDefaultConfig - write the defaults as an indented json file; refuses to clobber an existing file
func WriteDefaultConfig(fn string) error {
	const (
		FAIL1 = "WriteDefaultConfig(): '%s' already exists"
		MSG1  = "WriteDefaultConfig() wrote configuration file: "
	)

	if _, err := os.Stat(fn); err == nil {
		return fmt.Errorf(FAIL1, fn)
	}

	content, err := json.MarshalIndent(BuildDefaultConfig(), "", vv.JSONINDENT)
	if err != nil {
		return err
	}

	if d := filepath.Dir(fn); d != "" {
		if err = os.MkdirAll(d, vv.DIRPERMS); err != nil {
			return err
		}
	}

	if err = os.WriteFile(fn, content, vv.WRITEPERMS); err != nil {
		return err
	}
	Msg.PEEK(MSG1 + fn)
	return nil
}
