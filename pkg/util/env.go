package util

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// LoadEnv 按环境加载 .env 文件（.env.development / .env.production）
// 已存在的环境变量不会被覆盖
func LoadEnv(env string) error {
	filename := ".env." + env
	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// 回退到通用 .env
			f, err = os.Open(".env")
			if err != nil {
				return fmt.Errorf("no env file found for %q: %w", env, err)
			}
		} else {
			return err
		}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}
	return scanner.Err()
}

// GetEnv 获取环境变量
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvDefault 获取环境变量，为空时返回默认值
func GetEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetIntEnv 获取整型环境变量，解析失败返回 0
func GetIntEnv(key string) int64 {
	return cast.ToInt64(os.Getenv(key))
}

// GetBoolEnv 获取布尔环境变量（1/true/yes 均为真）
func GetBoolEnv(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	if v == "yes" {
		return true
	}
	return cast.ToBool(v)
}

// GetDurationEnv 获取时长环境变量，如 "5s"、"10m"
func GetDurationEnv(key string) time.Duration {
	return cast.ToDuration(os.Getenv(key))
}
