package config

import (
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"award-sync/internal/errors"
)

// hclFile mirrors Config for HCL files. Every block and attribute is optional
// and only the ones present are laid over the defaults.
type hclFile struct {
	Version  *string      `hcl:"version,optional"`
	Upstream *hclUpstream `hcl:"upstream,block"`
	Server   *hclServer   `hcl:"server,block"`
	Output   *hclOutput   `hcl:"output,block"`
	Logging  *hclLogging  `hcl:"logging,block"`
}

type hclUpstream struct {
	BaseURL        *string `hcl:"base_url,optional"`
	TimeoutSeconds *int    `hcl:"timeout_seconds,optional"`
	UserAgent      *string `hcl:"user_agent,optional"`
}

type hclServer struct {
	Address             *string  `hcl:"address,optional"`
	ReadTimeoutSeconds  *int     `hcl:"read_timeout_seconds,optional"`
	WriteTimeoutSeconds *int     `hcl:"write_timeout_seconds,optional"`
	EnableCORS          *bool    `hcl:"enable_cors,optional"`
	AllowedOrigins      []string `hcl:"allowed_origins,optional"`
}

type hclOutput struct {
	DefaultFormat *string `hcl:"default_format,optional"`
	NoColor       *bool   `hcl:"no_color,optional"`
}

type hclLogging struct {
	Level       *string `hcl:"level,optional"`
	Format      *string `hcl:"format,optional"`
	Output      *string `hcl:"output,optional"`
	Development *bool   `hcl:"development,optional"`
}

func loadHCL(path string, cfg *Config) error {
	var file hclFile
	if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
		return errors.Config("decode hcl config", err)
	}
	file.apply(cfg)
	return nil
}

func (f *hclFile) apply(cfg *Config) {
	setString(&cfg.Version, f.Version)

	if u := f.Upstream; u != nil {
		setString(&cfg.Upstream.BaseURL, u.BaseURL)
		setInt(&cfg.Upstream.TimeoutSeconds, u.TimeoutSeconds)
		setString(&cfg.Upstream.UserAgent, u.UserAgent)
	}
	if s := f.Server; s != nil {
		setString(&cfg.Server.Address, s.Address)
		setInt(&cfg.Server.ReadTimeoutSeconds, s.ReadTimeoutSeconds)
		setInt(&cfg.Server.WriteTimeoutSeconds, s.WriteTimeoutSeconds)
		setBool(&cfg.Server.EnableCORS, s.EnableCORS)
		if s.AllowedOrigins != nil {
			cfg.Server.AllowedOrigins = s.AllowedOrigins
		}
	}
	if o := f.Output; o != nil {
		setString(&cfg.Output.DefaultFormat, o.DefaultFormat)
		setBool(&cfg.Output.NoColor, o.NoColor)
	}
	if l := f.Logging; l != nil {
		setString(&cfg.Logging.Level, l.Level)
		setString(&cfg.Logging.Format, l.Format)
		setString(&cfg.Logging.Output, l.Output)
		setBool(&cfg.Logging.Development, l.Development)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// encodeHCL renders cfg in the block layout loadHCL reads.
func encodeHCL(cfg *Config) []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()
	root.SetAttributeValue("version", cty.StringVal(cfg.Version))

	upstream := root.AppendNewBlock("upstream", nil).Body()
	upstream.SetAttributeValue("base_url", cty.StringVal(cfg.Upstream.BaseURL))
	upstream.SetAttributeValue("timeout_seconds", cty.NumberIntVal(int64(cfg.Upstream.TimeoutSeconds)))
	upstream.SetAttributeValue("user_agent", cty.StringVal(cfg.Upstream.UserAgent))

	server := root.AppendNewBlock("server", nil).Body()
	server.SetAttributeValue("address", cty.StringVal(cfg.Server.Address))
	server.SetAttributeValue("read_timeout_seconds", cty.NumberIntVal(int64(cfg.Server.ReadTimeoutSeconds)))
	server.SetAttributeValue("write_timeout_seconds", cty.NumberIntVal(int64(cfg.Server.WriteTimeoutSeconds)))
	server.SetAttributeValue("enable_cors", cty.BoolVal(cfg.Server.EnableCORS))
	origins := make([]cty.Value, 0, len(cfg.Server.AllowedOrigins))
	for _, o := range cfg.Server.AllowedOrigins {
		origins = append(origins, cty.StringVal(o))
	}
	if len(origins) == 0 {
		server.SetAttributeValue("allowed_origins", cty.ListValEmpty(cty.String))
	} else {
		server.SetAttributeValue("allowed_origins", cty.ListVal(origins))
	}

	output := root.AppendNewBlock("output", nil).Body()
	output.SetAttributeValue("default_format", cty.StringVal(cfg.Output.DefaultFormat))
	output.SetAttributeValue("no_color", cty.BoolVal(cfg.Output.NoColor))

	logging := root.AppendNewBlock("logging", nil).Body()
	logging.SetAttributeValue("level", cty.StringVal(cfg.Logging.Level))
	logging.SetAttributeValue("format", cty.StringVal(cfg.Logging.Format))
	logging.SetAttributeValue("output", cty.StringVal(cfg.Logging.Output))
	logging.SetAttributeValue("development", cty.BoolVal(cfg.Logging.Development))

	return f.Bytes()
}
