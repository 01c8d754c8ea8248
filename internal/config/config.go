// Package config loads the orefinder YAML configuration.
//
// The document is checked against an embedded JSON schema before it is
// decoded, so unknown keys and wrong types fail at startup rather than being
// silently ignored. Values absent from the file keep the defaults from
// Default. Environment overrides are applied last by ApplyEnv.
package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// MaxSearchRadius bounds search.max_radius; the probe count grows with the cube of the radius.
const MaxSearchRadius = 64

var ErrInvalid = errors.New("invalid config")

//go:embed schema.json
var schemaJSON string

type Config struct {
	Indicate    Indicate          `yaml:"indicate"`
	Text        map[string]string `yaml:"text"`
	Functions   Functions         `yaml:"functions"`
	Chance      Chance            `yaml:"chance"`
	Server      Server            `yaml:"server"`
	Search      Search            `yaml:"search"`
	World       World             `yaml:"world"`
	Permissions Permissions       `yaml:"permissions"`
}

type Indicate struct {
	InHand  []string `yaml:"inhand"`
	LookFor []string `yaml:"lookfor"`
}

type Functions struct {
	BlockStealing bool `yaml:"block_stealing"`
}

type Chance struct {
	StealBlock int `yaml:"steal_block"`
}

type Server struct {
	Addr        string `yaml:"addr"`
	Token       string `yaml:"token"`
	MaxPlayers  int    `yaml:"max_players"`
	OutboxDepth int    `yaml:"outbox_depth"`
	CORSOrigin  string `yaml:"cors_origin"`
	DSN         string `yaml:"-"`
	Migrations  string `yaml:"-"`
}

type Search struct {
	MaxRadius int `yaml:"max_radius"`
}

type World struct {
	IDs       []string `yaml:"ids"`
	Generator string   `yaml:"generator"`
	Fill      string   `yaml:"fill"`
	Seed      int64    `yaml:"seed"`
	SurfaceY  int      `yaml:"surface_y"`
}

type Permissions struct {
	DefaultAllow bool    `yaml:"default_allow"`
	Deny         []int64 `yaml:"deny"`
	Grant        []int64 `yaml:"grant"`
}

func Default() Config {
	return Config{
		Indicate: Indicate{
			InHand:  []string{"diamond_pickaxe", "golden_pickaxe", "iron_pickaxe", "stone_pickaxe"},
			LookFor: []string{"diamond_ore", "gold_ore", "iron_ore", "coal_ore"},
		},
		Text: map[string]string{
			"very_cold":    "Freezing! Nothing around here.",
			"oneblock_hot": "Burning! It is right next to you!",
			"very_hot":     "Very hot!",
			"hot":          "Hot!",
			"warm":         "Warm.",
			"lukewarm":     "Lukewarm.",
			"cold":         "Cold.",
			"ender_steal":  "An enderman stole your tool!",
		},
		Chance: Chance{StealBlock: 100},
		Server: Server{Addr: ":8080", MaxPlayers: 100, OutboxDepth: 32},
		Search: Search{MaxRadius: 20},
		World: World{
			IDs:       []string{"world"},
			Generator: "layered",
			Fill:      "stone",
			Seed:      1337,
			SurfaceY:  64,
		},
		Permissions: Permissions{DefaultAllow: true},
	}
}

func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Parse(raw []byte) (Config, error) {
	if err := validateSchema(raw); err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("orefinder.schema.json", schemaJSON)
	})
	return schema, schemaErr
}

func validateSchema(raw []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}
	if doc == nil {
		return nil
	}
	// The validator expects encoding/json value shapes.
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalize yaml: %w", err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("normalize yaml: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Validate checks cross-field rules the schema cannot express and clamps
// search.max_radius to MaxSearchRadius.
func (c *Config) Validate() error {
	if len(c.Indicate.InHand) == 0 || len(c.Indicate.LookFor) == 0 {
		return fmt.Errorf("%w: indicate.inhand and indicate.lookfor must both be non-empty", ErrInvalid)
	}
	if c.Functions.BlockStealing && c.Chance.StealBlock <= 0 {
		return fmt.Errorf("%w: chance.steal_block must be positive when block_stealing is on", ErrInvalid)
	}
	if c.Search.MaxRadius < 0 {
		return fmt.Errorf("%w: search.max_radius must not be negative", ErrInvalid)
	}
	if c.Search.MaxRadius > MaxSearchRadius {
		c.Search.MaxRadius = MaxSearchRadius
	}
	if c.Server.MaxPlayers < 0 {
		return fmt.Errorf("%w: server.max_players must not be negative", ErrInvalid)
	}
	switch c.World.Generator {
	case "layered", "uniform":
	default:
		return fmt.Errorf("%w: world.generator %q", ErrInvalid, c.World.Generator)
	}
	return nil
}

// ApplyEnv overlays OREFINDER_* variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv("OREFINDER_ADDR")); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(getenv("OREFINDER_TOKEN")); v != "" {
		c.Server.Token = v
	}
	c.Server.DSN = strings.TrimSpace(getenv("OREFINDER_DB_DSN"))
	c.Server.Migrations = strings.TrimSpace(getenv("OREFINDER_MIGRATIONS_DIR"))

	var err error
	if c.Server.MaxPlayers, err = intEnv(getenv, "OREFINDER_MAX_PLAYERS", c.Server.MaxPlayers); err != nil {
		return err
	}
	if c.Search.MaxRadius, err = intEnv(getenv, "OREFINDER_SEARCH_RADIUS", c.Search.MaxRadius); err != nil {
		return err
	}
	return c.Validate()
}

func intEnv(getenv func(string) string, key string, fallback int) (int, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("%w: %s=%q", ErrInvalid, key, v)
	}
	return n, nil
}
