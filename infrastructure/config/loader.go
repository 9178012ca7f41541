// Package config loads service configuration from a YAML file, then lets
// environment variables override individual fields through `env` struct tags.
//
// Before overrides are applied, .env files are read into the process
// environment: ENV_FILE when set, otherwise .env.local followed by .env.
// Variables already present in the environment are never replaced.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigPathEnv names the variable that overrides the config file location.
const ConfigPathEnv = "CONFIG_PATH"

var durationType = reflect.TypeOf(time.Duration(0))

// Load reads path into a T and applies env overrides. A missing file is not an
// error when allowMissing is true; T then starts from its zero value.
func Load[T any](path string, allowMissing bool) (*T, error) {
	var cfg T
	if err := loadInto(path, allowMissing, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadWithDefaults seeds a T with setDefaults, then reads path and applies env
// overrides on top. A key the file or environment sets explicitly wins over
// its default, including an explicit zero.
func LoadWithDefaults[T any](path string, allowMissing bool, setDefaults func(*T)) (*T, error) {
	var cfg T
	if setDefaults != nil {
		setDefaults(&cfg)
	}
	if err := loadInto(path, allowMissing, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadInto[T any](path string, allowMissing bool, cfg *T) error {
	if err := loadDotEnv(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return fmt.Errorf("parse config %s: %w", path, unmarshalErr)
		}
	case allowMissing && errors.Is(err, fs.ErrNotExist):
	default:
		return fmt.Errorf("read config %s: %w", path, err)
	}

	ApplyEnv(cfg)
	return nil
}

// GetConfigPath returns $CONFIG_PATH or fallback.
func GetConfigPath(fallback string) string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p
	}
	return fallback
}

func loadDotEnv() error {
	if explicit := os.Getenv("ENV_FILE"); explicit != "" {
		if err := godotenv.Load(explicit); err != nil {
			return fmt.Errorf("load env file %s: %w", explicit, err)
		}
		return nil
	}
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// ApplyEnv walks cfg (a pointer to a struct) and sets every field carrying an
// `env` tag whose variable is non-empty. Unparseable values are ignored.
func ApplyEnv(cfg any) {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return
	}
	walk(v.Elem())
}

func walk(v reflect.Value) {
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := range v.NumField() {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct {
			walk(field)
			continue
		}
		name := t.Field(i).Tag.Get("env")
		if name == "" {
			continue
		}
		if raw, ok := os.LookupEnv(name); ok && raw != "" {
			setFromString(field, raw)
		}
	}
}

func setFromString(field reflect.Value, raw string) {
	raw = strings.TrimSpace(raw)
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == durationType {
			if d, err := time.ParseDuration(raw); err == nil {
				field.SetInt(int64(d))
			}
			return
		}
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			field.SetInt(n)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
			field.SetUint(n)
		}
	case reflect.Float32, reflect.Float64:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			field.SetFloat(f)
		}
	case reflect.Bool:
		switch strings.ToLower(raw) {
		case "1", "true", "yes", "on":
			field.SetBool(true)
		case "0", "false", "no", "off":
			field.SetBool(false)
		}
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return
		}
		parts := strings.Split(raw, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		field.Set(reflect.ValueOf(out))
	}
}
