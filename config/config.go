package config

import (
	"os"
	"strings"
	"sync"

	"emperror.dev/errors"
	"github.com/creasty/defaults"
	"gopkg.in/yaml.v2"
)

// DefaultLocation is the default path to the daemon configuration file.
const DefaultLocation = "/etc/modctl/config.yml"

var (
	mu            sync.RWMutex
	_config       *Configuration
	_debugViaFlag bool
)

// Locker specific to writing the configuration to the disk, this happens
// in areas that might already be locked, so we don't want to crash the process.
var _writeLock sync.Mutex

// ApiConfiguration defines the configuration for the REST API exposed by
// the daemon webserver.
type ApiConfiguration struct {
	// The interface that the webserver should bind to.
	Host string `default:"0.0.0.0" yaml:"host"`

	// The port that the webserver should bind to.
	Port int `default:"8090" yaml:"port"`

	// Docs controls whether the auto-generated Swagger/OpenAPI documentation is served.
	Docs DocsConfiguration `yaml:"docs"`

	// SSL configuration for the daemon.
	Ssl struct {
		Enabled         bool   `json:"enabled" yaml:"enabled"`
		CertificateFile string `json:"cert" yaml:"cert"`
		KeyFile         string `json:"key" yaml:"key"`
	}

	// PublicBaseURL is the externally reachable base URL of this daemon, used
	// when assembling resource links in API responses. When empty, links are
	// built relative to the request host.
	PublicBaseURL string `json:"public_base_url" yaml:"public_base_url"`

	// A list of IP address of proxies that may send a X-Forwarded-For header
	// to set the true clients IP.
	TrustedProxies []string `json:"trusted_proxies" yaml:"trusted_proxies"`
}

type DocsConfiguration struct {
	Enabled bool `default:"true" yaml:"enabled"`
}

// SiteConfiguration describes the host application whose modules this daemon
// administers. The two URLs mirror the host's "siteurl" and "home" options and
// are what the development URL adapter filters during GraphQL data generation.
type SiteConfiguration struct {
	// SiteURL is the canonical URL of the host application.
	SiteURL string `default:"http://localhost" json:"siteurl" yaml:"siteurl"`

	// HomeURL is the public homepage URL of the host application.
	HomeURL string `default:"http://localhost" json:"home" yaml:"home"`

	// GraphQLEndpoint is the request path of the host's public GraphQL API.
	GraphQLEndpoint string `default:"/graphql" json:"graphql_endpoint" yaml:"graphql_endpoint"`

	// DevelopmentURLAdapter enables the localhost port-stripping filter during
	// GraphQL data generation. Only useful when the daemon runs next to a
	// containerized test client that cannot reach the mapped port.
	DevelopmentURLAdapter bool `default:"false" json:"development_url_adapter" yaml:"development_url_adapter"`
}

// SystemConfiguration defines daemon level settings such as storage locations.
type SystemConfiguration struct {
	// The root directory where modctl data is stored.
	RootDirectory string `default:"/var/lib/modctl" yaml:"root_directory"`

	// DatabasePath is the location of the SQLite database holding module
	// enablement state and persisted setting values. Defaults to a file
	// within the root directory when unset.
	DatabasePath string `yaml:"database_path"`
}

type Configuration struct {
	// The location from which this configuration instance was instantiated.
	path string

	// Determines if the daemon should be running in debug mode. This value is
	// ignored if the debug flag is passed through the command line arguments.
	Debug bool

	AppName string `default:"Modctl" json:"app_name" yaml:"app_name"`

	// The token used when performing administrative operations. Requests to
	// mutating endpoints must validate against it.
	AuthenticationToken string `json:"token" yaml:"token"`

	Api    ApiConfiguration    `json:"api" yaml:"api"`
	Site   SiteConfiguration   `json:"site" yaml:"site"`
	System SystemConfiguration `json:"system" yaml:"system"`

	// AllowedOrigins is a list of allowed request origins for the admin API.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// NewAtPath creates a new struct and set the path where it should be stored.
// This function does not modify the currently stored global configuration.
func NewAtPath(path string) (*Configuration, error) {
	var c Configuration
	// Configures the default values for many of the configuration options present
	// in the structs. Values set in the configuration file take priority over the
	// default values.
	if err := defaults.Set(&c); err != nil {
		return nil, err
	}
	c.path = path
	return &c, nil
}

// Set the global configuration instance. This is a blocking operation such that
// anything trying to set a different configuration value, or read the configuration
// will be paused until it is complete.
func Set(c *Configuration) {
	mu.Lock()
	defer mu.Unlock()
	_config = c
}

// SetDebugViaFlag tracks if the application is running in debug mode because of
// a command line flag argument. If so we do not want to store that configuration
// change to the disk.
func SetDebugViaFlag(d bool) {
	mu.Lock()
	defer mu.Unlock()
	_config.Debug = d
	_debugViaFlag = d
}

// Get returns the global configuration instance. This is a thread-safe operation
// that will block if the configuration is presently being modified.
//
// Be aware that you CANNOT make modifications to the currently stored configuration
// by modifying the struct returned by this function. The only way to make
// modifications is by using the Update() function and passing data through in
// the callback.
func Get() *Configuration {
	mu.RLock()
	c := *_config
	mu.RUnlock()
	return &c
}

// Update performs an in-situ update of the global configuration object using
// a thread-safe mutex lock. This is the correct way to make modifications to
// the global configuration.
func Update(callback func(c *Configuration)) {
	mu.Lock()
	defer mu.Unlock()
	callback(_config)
}

// Path returns the file path where this configuration is stored.
func (c *Configuration) Path() string {
	return c.path
}

// DatabasePath returns the resolved location of the SQLite database file.
func (c *Configuration) DatabasePath() string {
	if c.System.DatabasePath != "" {
		return c.System.DatabasePath
	}
	return strings.TrimSuffix(c.System.RootDirectory, "/") + "/modctl.db"
}

// WriteToDisk writes the configuration to the disk. This is a thread safe operation
// and will only allow one write at a time. Additional calls while writing are
// queued up.
func WriteToDisk(c *Configuration) error {
	_writeLock.Lock()
	defer _writeLock.Unlock()

	ccopy := *c
	// If debugging is set with the flag, don't save that to the configuration file,
	// otherwise you'll always end up in debug mode.
	if _debugViaFlag {
		ccopy.Debug = false
	}
	if c.path == "" {
		return errors.New("cannot write configuration, no path defined in struct")
	}
	b, err := yaml.Marshal(&ccopy)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.path, b, 0o600); err != nil {
		return err
	}
	return nil
}

// FromFile reads the configuration from the provided file and stores it in the
// global singleton for this instance.
func FromFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c, err := NewAtPath(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return err
	}
	if t := os.Getenv("MODCTL_TOKEN"); t != "" {
		c.AuthenticationToken = t
	}

	// Store this configuration in the global state.
	Set(c)
	return nil
}

// EnsureDirectories creates the daemon's storage directories so that only the
// owner can read the data, and no other users.
func EnsureDirectories(c *Configuration) error {
	if err := os.MkdirAll(c.System.RootDirectory, 0o700); err != nil {
		return errors.WithMessage(err, "config: could not create root data directory")
	}
	return nil
}
