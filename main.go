package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"user-admin/config"
	"user-admin/database"
	"user-admin/logger"
	"user-admin/web"
	"user-admin/web/service"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}

	server := web.NewServer()
	if err := server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			if err := server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			if err := database.CloseDB(); err != nil {
				logger.Warning("close db err:", err)
			}
			logger.CloseLogger()
			return
		}
	}
}

func migrateDb() {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("migration done")
}

func resetAdminPassword(username string, password string) {
	if username == "" || password == "" {
		fmt.Println("username and password required")
		return
	}
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	userService := service.UserService{}
	if err := userService.ResetPassword(username, password); err != nil {
		fmt.Println("reset password failed:", err)
		return
	}
	fmt.Println("reset password success")
}

func updateTwoFactor(enable bool, token string) {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	settingService := service.SettingService{}
	if token != "" {
		if err := settingService.SetTwoFactorToken(token); err != nil {
			fmt.Println("set two-factor token failed:", err)
			return
		}
	}
	if err := settingService.SetTwoFactorEnable(enable); err != nil {
		fmt.Println("set two-factor enable failed:", err)
		return
	}
	fmt.Printf("two-factor enabled: %v\n", enable)
}

func main() {
	_ = godotenv.Load()

	var rootCmd = &cobra.Command{
		Use: config.GetName(),
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database and seed the role catalog",
		Run: func(cmd *cobra.Command, args []string) {
			migrateDb()
		},
	}

	var adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Manage accounts from the command line",
	}

	var resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Reset an account's password",
		Run: func(cmd *cobra.Command, args []string) {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			resetAdminPassword(username, password)
		},
	}

	resetCmd.Flags().String("username", "", "account to reset")
	resetCmd.Flags().String("password", "", "new password")
	adminCmd.AddCommand(resetCmd)

	var twoFactorCmd = &cobra.Command{
		Use:   "twofactor",
		Short: "Configure the login second factor",
		Run: func(cmd *cobra.Command, args []string) {
			enable, _ := cmd.Flags().GetBool("enable")
			token, _ := cmd.Flags().GetString("token")
			updateTwoFactor(enable, token)
		},
	}

	twoFactorCmd.Flags().Bool("enable", false, "enable the second factor")
	twoFactorCmd.Flags().String("token", "", "TOTP secret")

	rootCmd.AddCommand(runCmd, migrateCmd, adminCmd, twoFactorCmd)

	if len(os.Args) == 1 {
		runWebServer()
		return
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
