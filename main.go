package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"simples-server/config"
	httpx "simples-server/http"
	"simples-server/mimetypes"
	"simples-server/nfs"
	"simples-server/rootfs"
	"simples-server/tftp"
	"simples-server/utils"
)

// loadConfig reads the optional config file and lets flags given on the
// command line override it. With no arguments it returns config.Default.
func loadConfig(fset *flag.FlagSet, args []string) (config.Config, error) {
	configPath := fset.String("config", "", "TOML or YAML config file")
	addr := fset.String("addr", config.DefaultHTTPAddr, "HTTP listen address")
	root := fset.String("root", config.DefaultRoot, "directory to serve")
	tftpAddr := fset.String("tftp", "", "TFTP listen address, e.g. :69 (disabled when empty)")
	nfsAddr := fset.String("nfs", "", "NFS listen address, e.g. :2049 (disabled when empty)")
	if err := fset.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return cfg, err
		}
	}
	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.HTTP.Addr = *addr
		case "root":
			cfg.Root = *root
		case "tftp":
			cfg.TFTP.Addr = *tftpAddr
		case "nfs":
			cfg.NFS.Addr = *nfsAddr
		}
	})
	return cfg, cfg.Validate()
}

// announce prints the two startup lines.
func announce(w io.Writer, baseURL, entryPoint string) {
	link := color.New(color.FgCyan, color.Underline).SprintFunc()
	fmt.Fprintf(w, "Server running at %s\n", link(baseURL))
	fmt.Fprintf(w, "Open: %s\n", link(baseURL+"/"+entryPoint))
}

func main() {
	cfg, err := loadConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("config failure: %v", err)
	}

	types, err := mimetypes.New(cfg.MIMETypes)
	if err != nil {
		log.Fatalf("mime types failure: %v", err)
	}
	fs, err := rootfs.New(cfg.Root)
	if err != nil {
		log.Fatalf("open root failure: %v", err)
	}

	// Start HTTP server
	loggerHTTP := log.New(os.Stderr, "http ", log.LstdFlags)
	handler := httpx.AccessLog(httpx.NewHandler(fs, types, loggerHTTP), loggerHTTP)
	if _, err := httpx.StartHTTPServer(cfg.HTTP.Addr, handler, loggerHTTP); err != nil {
		log.Fatalf("start http failure: %v", utils.DescribeBindError(cfg.HTTP.Addr, err))
	}

	if cfg.TFTP.Addr != "" {
		loggerTFTP := log.New(os.Stderr, "tftp ", log.LstdFlags)
		if _, err := tftp.StartTFTPServer(cfg.TFTP.Addr, fs, loggerTFTP); err != nil {
			log.Fatalf("start tftp failure: %v", utils.DescribeBindError(cfg.TFTP.Addr, err))
		}
	}

	if cfg.NFS.Addr != "" {
		loggerNFS := log.New(os.Stderr, "nfs ", log.LstdFlags)
		if _, err := nfs.StartNFSD(cfg.NFS.Addr, fs, loggerNFS); err != nil {
			log.Fatalf("start nfs failure: %v", utils.DescribeBindError(cfg.NFS.Addr, err))
		}
	}

	baseURL, err := utils.BrowseURL(cfg.HTTP.Addr)
	if err != nil {
		log.Fatalf("invalid http addr: %v", err)
	}
	announce(os.Stdout, baseURL, cfg.EntryPoint)

	// Block until termination signal to keep goroutine servers alive
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	log.Printf("received signal %s, exiting", sig)
}
