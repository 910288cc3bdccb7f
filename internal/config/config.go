package config

import (
	"log"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig
	Mongo    MongoConfig
	Mail     MailConfig
	App      AppConfig
	CI       CIConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// MongoConfig locates the parameter documents naming the source schemas.
type MongoConfig struct {
	URI             string
	Database        string
	ParamCollection string
	BCDocumentID    string
	PDDocumentID    string
}

type MailConfig struct {
	Enabled       bool
	MailgunDomain string
	MailgunAPIKey string
	From          string
	To            []string
	CC            []string
}

type AppConfig struct {
	OutputDir    string
	ReportPrefix string
}

// CIConfig redirects recipients to the sender when the job runs from a
// non-production branch.
type CIConfig struct {
	InCI             bool
	WorkflowBranch   string
	ProductionBranch string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "retail")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
		viper.SetDefault("MONGO_DB", "parameter")
		viper.SetDefault("MONGO_PARAM_COLLECTION", "parameter")
		viper.SetDefault("MAIL_ENABLED", false)
		viper.SetDefault("APP_OUTPUT_DIR", "./reports")
		viper.SetDefault("APP_REPORT_PREFIX", "PRI_Retail_Daily_Sales_Report")
		viper.SetDefault("CI", false)
		viper.SetDefault("PRODUCTION_BRANCH", "master")

		viper.AutomaticEnv()

		ensureDir(viper.GetString("APP_OUTPUT_DIR"))

		instance = &Config{
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Mongo: MongoConfig{
				URI:             viper.GetString("MONGO_URI"),
				Database:        viper.GetString("MONGO_DB"),
				ParamCollection: viper.GetString("MONGO_PARAM_COLLECTION"),
				BCDocumentID:    viper.GetString("MONGO_PARAM_BC_ID"),
				PDDocumentID:    viper.GetString("MONGO_PARAM_PD_ID"),
			},
			Mail: MailConfig{
				Enabled:       viper.GetBool("MAIL_ENABLED"),
				MailgunDomain: viper.GetString("MAILGUN_DOMAIN"),
				MailgunAPIKey: viper.GetString("MAILGUN_API_KEY"),
				From:          viper.GetString("MAIL_FROM"),
				To:            splitAddresses(viper.GetString("MAIL_TO")),
				CC:            splitAddresses(viper.GetString("MAIL_CC")),
			},
			App: AppConfig{
				OutputDir:    viper.GetString("APP_OUTPUT_DIR"),
				ReportPrefix: viper.GetString("APP_REPORT_PREFIX"),
			},
			CI: CIConfig{
				InCI:             viper.GetBool("CI"),
				WorkflowBranch:   viper.GetString("WORKFLOW_BRANCH"),
				ProductionBranch: viper.GetString("PRODUCTION_BRANCH"),
			},
		}
	})

	return instance
}

// Redirect reports whether outbound mail must collapse to the sender: a CI
// run triggered from anything but the production branch.
func (c *CIConfig) Redirect() bool {
	return c.InCI && c.WorkflowBranch != c.ProductionBranch
}

// splitAddresses parses a pipe-separated address list.
func splitAddresses(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, addr := range strings.Split(raw, "|") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
