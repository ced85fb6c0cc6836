package runner

import (
	"fmt"
	"sort"

	"github.com/joho/godotenv"
)

// LoadEnvFile reads a dotenv file into sorted KEY=value pairs for the
// engine environment. An empty path yields no variables.
func LoadEnvFile(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read env file: %w", err)
	}

	env := make([]string, 0, len(vars))
	for k, v := range vars {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)
	return env, nil
}
