package emit

import (
	"fmt"
	"regexp"
)

// Port describes the bring-up of the lanes of one QSFP cage.
type Port struct {
	Cage    int    `mapstructure:"cage" yaml:"cage"`
	Lanes   int    `mapstructure:"lanes" yaml:"lanes"`
	Speed   string `mapstructure:"speed" yaml:"speed"`
	FEC     string `mapstructure:"fec" yaml:"fec"`
	AutoNeg string `mapstructure:"autoneg" yaml:"autoneg"`
}

/*
Config holds the deployment specific parts of the script: the name of
the P4 program, the control block holding the tables and the ports to
bring up before programming them. An empty Ports skips port bring-up.
*/
type Config struct {
	Program string `mapstructure:"program" yaml:"program"`
	Control string `mapstructure:"control" yaml:"control"`
	Ports   []Port `mapstructure:"ports" yaml:"ports"`
}

// DefaultPort returns a single lane 100G port without FEC nor
// autonegotiation on the given cage.
func DefaultPort(cage int) Port {
	return Port{
		Cage:    cage,
		Lanes:   1,
		Speed:   "BF_SPEED_100G",
		FEC:     "BF_FEC_TYP_NONE",
		AutoNeg: "PM_AN_FORCE_DISABLE",
	}
}

// DefaultConfig returns the configuration for the given P4 program with
// tables in the Ingress control and ports on cages 1 and 5.
func DefaultConfig(program string) Config {
	return Config{
		Program: program,
		Control: "Ingress",
		Ports:   []Port{DefaultPort(1), DefaultPort(5)},
	}
}

var (
	identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	constant   = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
)

// Validate returns an error if the configuration cannot be rendered into
// a valid script.
func (c Config) Validate() error {
	if !identifier.MatchString(c.Program) {
		return fmt.Errorf("invalid P4 program name %q", c.Program)
	}
	if !identifier.MatchString(c.Control) {
		return fmt.Errorf("invalid control block name %q", c.Control)
	}
	for i, p := range c.Ports {
		if p.Cage <= 0 {
			return fmt.Errorf("port %d: invalid cage %d", i, p.Cage)
		}
		if p.Lanes <= 0 {
			return fmt.Errorf("port %d: invalid number of lanes %d", i, p.Lanes)
		}
		for _, v := range []string{p.Speed, p.FEC, p.AutoNeg} {
			if !constant.MatchString(v) {
				return fmt.Errorf("port %d: invalid setting %q", i, v)
			}
		}
	}
	return nil
}
