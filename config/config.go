package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Config is an interface that represents a source from which application configuration can be loaded.
type Config interface {
	LoadConfig(c any) error
	Check() error
	Get(key string) (string, error)
}

// Load first ensures that the config system valid and accessible. Then it loads the config into c.
func Load(cs Config, c any) error {
	if err := cs.Check(); err != nil {
		return err
	}
	return cs.LoadConfig(c)
}

// File

type File struct {
	ConfigFilePath string
	Config         map[string]interface{}
}

func (f *File) Check() error {
	if f.ConfigFilePath == "" {
		return fmt.Errorf("configFilePath cannot be empty")
	}

	return nil
}

func newFile(configFilePath string) (*File, error) {
	file := &File{ConfigFilePath: configFilePath}

	if err := file.Check(); err != nil {
		return nil, err
	}

	return file, nil
}

// LoadConfig decodes the JSON file into appConfig and keeps the raw keys for Get.
func (f *File) LoadConfig(appConfig any) error {
	b, err := os.ReadFile(f.ConfigFilePath)
	if err != nil {
		return err
	}

	raw := map[string]interface{}{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("parsing %s: %w", f.ConfigFilePath, err)
	}
	f.Config = raw

	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(appConfig); err != nil {
		return fmt.Errorf("decoding %s: %w", f.ConfigFilePath, err)
	}
	return nil
}

type ValueNotStringError struct {
	Key   string
	Value interface{}
}

func (e *ValueNotStringError) Error() string {
	return fmt.Sprintf("value for key %s is not a string: %v", e.Key, e.Value)
}

type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key %s not found in config", e.Key)
}

// Get retrieves a value from the configuration based on the provided key.
// If the value is a string, it is returned as is. If the value is not a string,
// it is converted to a string using fmt.Sprintf and returned along with the error ValueNotStringError.
// If the key is not found in the configuration, an error of type KeyNotFoundError is returned.
func (f *File) Get(key string) (string, error) {
	value, ok := f.Config[key]
	if !ok {
		return "", &KeyNotFoundError{Key: key}
	}

	strValue := fmt.Sprintf("%v", value)

	strValueAsserted, ok := value.(string)
	if !ok {
		return strValue, &ValueNotStringError{Key: key, Value: value}
	}

	return strValueAsserted, nil
}

// Rigel

// RigelClient is the part of *rigel.Rigel used for loading configuration.
type RigelClient interface {
	Get(ctx context.Context, key string) (string, error)
}

// Rigel loads configuration keys from a Rigel schema. Each exported field of
// the target struct is read from the key named by its json tag; fields
// tagged omitempty keep their current value when the key cannot be read.
type Rigel struct {
	Client  RigelClient
	Timeout time.Duration
}

func (r *Rigel) Check() error {
	if r.Client == nil {
		return fmt.Errorf("rigel client cannot be nil")
	}
	return nil
}

func (r *Rigel) Get(key string) (string, error) {
	ctx, cancel := r.context()
	defer cancel()
	return r.Client.Get(ctx, key)
}

func (r *Rigel) context() (context.Context, context.CancelFunc) {
	timeout := r.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

func (r *Rigel) LoadConfig(config any) error {
	v := reflect.ValueOf(config)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config must be a pointer to a struct, got %T", config)
	}
	v = v.Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		key, optional := jsonKey(field)
		if key == "-" {
			continue
		}

		value, err := r.Get(key)
		if err != nil {
			if optional {
				continue
			}
			return fmt.Errorf("rigel key %s: %w", key, err)
		}
		if err := setField(v.Field(i), key, value); err != nil {
			return err
		}
	}
	return nil
}

func jsonKey(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name, false
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, strings.Contains(opts, "omitempty")
}

func setField(f reflect.Value, key, value string) error {
	switch f.Kind() {
	case reflect.String:
		f.SetString(value)
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("rigel key %s: %q is not an integer", key, value)
		}
		f.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("rigel key %s: %q is not a boolean", key, value)
		}
		f.SetBool(b)
	default:
		return fmt.Errorf("rigel key %s: unsupported field kind %s", key, f.Kind())
	}
	return nil
}
