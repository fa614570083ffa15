package config

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	RegisterTestingT(t)

	config, err := LoadFrom(lookupFrom(map[string]string{
		"AUTH_TOKEN": "secret",
		"MONGO_URI":  "mongodb://localhost:27017",
	}))

	Expect(err).ToNot(HaveOccurred())
	Expect(config.Port).To(Equal("3000"))
	Expect(config.AuthToken).To(Equal("secret"))
	Expect(config.StoreDriver).To(Equal(StoreDriverMongo))
	Expect(config.MongoDatabase).To(Equal("taskapi"))
	Expect(config.UpdateMode).To(Equal(UpdateModeReplace))
	Expect(config.RateLimitEnabled).To(BeFalse())
	Expect(config.RateLimit.Window).To(Equal(time.Minute))
	Expect(config.IsProduction()).To(BeFalse())
}

func TestLoadFrom_MissingRequired(t *testing.T) {
	RegisterTestingT(t)

	_, err := LoadFrom(lookupFrom(map[string]string{}))

	Expect(err).To(HaveOccurred())
	Expect(err.Error()).To(ContainSubstring("AUTH_TOKEN is required"))
	Expect(err.Error()).To(ContainSubstring("MONGO_URI is required"))
}

func TestLoadFrom_MemoryStoreNeedsNoURI(t *testing.T) {
	RegisterTestingT(t)

	config, err := LoadFrom(lookupFrom(map[string]string{
		"AUTH_TOKEN":   "secret",
		"STORE_DRIVER": "memory",
		"UPDATE_MODE":  "merge",
		"PORT":         "8080",
		"GIN_MODE":     "release",
	}))

	Expect(err).ToNot(HaveOccurred())
	Expect(config.StoreDriver).To(Equal(StoreDriverMemory))
	Expect(config.UpdateMode).To(Equal(UpdateModeMerge))
	Expect(config.Port).To(Equal("8080"))
	Expect(config.IsProduction()).To(BeTrue())
}

func TestLoadFrom_InvalidValues(t *testing.T) {
	RegisterTestingT(t)

	_, err := LoadFrom(lookupFrom(map[string]string{
		"AUTH_TOKEN":          "secret",
		"STORE_DRIVER":        "postgres",
		"UPDATE_MODE":         "patch",
		"RATE_LIMIT_ENABLED":  "maybe",
		"RATE_LIMIT_REQUESTS": "0",
		"RATE_LIMIT_WINDOW":   "soon",
	}))

	Expect(err).To(HaveOccurred())
	Expect(err.Error()).To(ContainSubstring("STORE_DRIVER"))
	Expect(err.Error()).To(ContainSubstring("UPDATE_MODE"))
	Expect(err.Error()).To(ContainSubstring("RATE_LIMIT_ENABLED"))
	Expect(err.Error()).To(ContainSubstring("RATE_LIMIT_REQUESTS"))
	Expect(err.Error()).To(ContainSubstring("RATE_LIMIT_WINDOW"))
}
