package config

import (
	"fmt"
	"strings"

	"github.com/remiges-tech/rigel"
	"github.com/remiges-tech/rigel/etcd"
)

func LoadConfigFromFile(filePath string, appConfig any) error {
	configSource, err := newFile(filePath)
	if err != nil {
		return fmt.Errorf("Failed to create File config source: %v", err)
	}

	err = Load(configSource, appConfig)
	if err != nil {
		return fmt.Errorf("Error loading config: %v", err)
	}

	return nil
}

// RigelOptions names the etcd cluster and the Rigel schema to read from.
type RigelOptions struct {
	EtcdEndpoints string // comma separated
	App           string
	Module        string
	Version       int
	ConfigName    string
}

// NewRigelClient connects to etcd and returns a Rigel client for the schema in opts.
func NewRigelClient(opts RigelOptions) (*rigel.Rigel, error) {
	etcdStorage, err := etcd.NewEtcdStorage(strings.Split(opts.EtcdEndpoints, ","))
	if err != nil {
		return nil, fmt.Errorf("Failed to create EtcdStorage: %v", err)
	}

	return rigel.New(etcdStorage, opts.App, opts.Module, opts.Version, opts.ConfigName), nil
}
