package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"

	"github.com/vcorps/corps-panel/config"
	"github.com/vcorps/corps-panel/database"
	"github.com/vcorps/corps-panel/logger"
	"github.com/vcorps/corps-panel/web"
	"github.com/vcorps/corps-panel/web/service"
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
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			err = server.Start()
			if err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			logger.CloseLogger()
			return
		}
	}
}

func resetSetting() {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	settingService := service.SettingService{}
	err = settingService.ResetSettings()
	if err != nil {
		fmt.Println("reset setting failed:", err)
	} else {
		fmt.Println("reset setting success")
	}
}

func showSetting(show bool) {
	if !show {
		return
	}
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	settingService := service.SettingService{}
	port, err := settingService.GetPort()
	if err != nil {
		fmt.Println("get current port failed, error info:", err)
	}

	userService := service.UserService{}
	userModel, err := userService.GetFirstUser()
	if err != nil {
		fmt.Println("get current user info failed, error info:", err)
		return
	}
	if userModel.Email == "" || userModel.Password == "" {
		fmt.Println("current email or password is empty")
	}
	fmt.Println("current panel settings as follows:")
	fmt.Println("email:", userModel.Email)
	fmt.Println("port:", port)
}

func updateSetting(port int, email string, password string) {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	settingService := service.SettingService{}

	if port > 0 {
		err := settingService.SetPort(port)
		if err != nil {
			fmt.Println("set port failed:", err)
		} else {
			fmt.Printf("set port %v success\n", port)
		}
	}
	if email != "" || password != "" {
		userService := service.UserService{}
		err := userService.UpdateFirstUser(email, password)
		if err != nil {
			fmt.Println("set email and password failed:", err)
		} else {
			fmt.Println("set email and password success")
		}
	}
}

func main() {
	config.LoadEnv()

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

	var (
		port     int
		email    string
		password string
		reset    bool
		show     bool
	)

	var settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Show or update panel settings",
		Run: func(cmd *cobra.Command, args []string) {
			if reset {
				resetSetting()
			}
			updateSetting(port, email, password)
			showSetting(show)
		},
	}
	settingCmd.Flags().IntVarP(&port, "port", "p", 0, "set panel port")
	settingCmd.Flags().StringVarP(&email, "email", "e", "", "set first user's email")
	settingCmd.Flags().StringVarP(&password, "password", "w", "", "set first user's password")
	settingCmd.Flags().BoolVar(&reset, "reset", false, "reset all settings to defaults")
	settingCmd.Flags().BoolVar(&show, "show", false, "show current settings")

	rootCmd.AddCommand(runCmd, settingCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
