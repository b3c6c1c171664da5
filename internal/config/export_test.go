package config

// LoadWith exposes load with an injected environment.
func LoadWith(path string, env map[string]string) (Config, error) {
	return load(path, func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
}
