// Copyright (c) 2024, Eugene Ponizovsky, <ponizovsky@gmail.com>. All rights
// reserved. Use of this source code is governed by a MIT License that can
// be found in the LICENSE file.

/*
Package globalconf loads environment-scoped application configuration. It loads
the base configuration and the configuration of the current environment,
merges them into the one configuration tree, where the environment layer has
precedence, and resolves marker keys in the merged tree using environment
variables.

	package main

	import (
	  "context"
	  "fmt"

	  "github.com/iph0/globalconf/fileconf"
	)

	func main() {
	  config, err := fileconf.InitGlobalConfig(context.Background(),
	    fileconf.Config{
	      RootDir:   "/srv/myapp",
	      ConfigDir: "configs",
	    },
	  )

	  if err != nil {
	    fmt.Println("Loading failed:", err)
	    return
	  }

	  fmt.Printf("%v\n", config)
	}

The environment is selected by the APP_ENV variable. For example, with the
layout

	configs/
	├── common.yml
	├── development.yml
	└── production.yml

and APP_ENV=production the files common.yml and production.yml are loaded. If
APP_ENV is not set or there is no file for the selected environment, the
development configuration is used and a warning is logged.

Maps are merged recursively, slices are concatenated, any other value of the
environment layer replaces the value of the base layer. For example, we have
common.yml:

	db:
	  host: localhost
	  port: 5432
	"@debug": false

and production.yml:

	db:
	  port: 5433

After merging we will get:

	db:
	  host: localhost
	  port: 5433
	"@debug": false

Keys with "@" prefix are marker keys. The key "@debug" is exposed as "debug"
and its value is taken from the environment variable DEBUG, if the variable
is set and non-empty; otherwise the value from the configuration is kept. The
key of the form "@name:var" is exposed as "name" and its value is taken from
the variable VAR. Variable names are upper-cased before lookup. With DEBUG=true
we will get:

	db:
	  host: localhost
	  port: 5433
	debug: "true"

Values taken from environment variables are strings; use Decode with weak
typing to map them to typed structure fields.

Processor loads any number of layers using named loaders, merges them from left
to right and resolves marker keys in the result:

	configProc := globalconf.NewProcessor(
	  globalconf.ProcessorConfig{
	    Loaders: map[string]globalconf.Loader{
	      "file": fileLdr,
	      "env":  envconf.NewLoader(nil),
	    },
	  },
	)

	config, err := configProc.Load(ctx,
	  "file:common.yml",
	  "file:production.yml",
	  "env:^MYAPP_",
	)
*/
package globalconf
