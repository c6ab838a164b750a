package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	cfgpkg "blogsmith/internal/config"
	"blogsmith/internal/post"
)

// blogsmith posts
func cmdPosts(args []string) error {
	var cf commonFlags
	var asJSON boolFlag

	fs := flag.NewFlagSet("posts", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	fs.Var(&asJSON, "json", "Print the listing as JSON")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	setupLogger(cf.logLevel)

	cfg, err := loadConfig(cf, cfgpkg.Overrides{})
	if err != nil {
		return err
	}

	posts, err := post.List(contentDir(cfg))
	if err != nil {
		return err
	}

	if asJSON.v {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(posts)
	}
	for _, p := range posts {
		fmt.Printf("%s  %-40s  %s\n", p.Date, p.Title, p.Filename)
	}
	return nil
}
