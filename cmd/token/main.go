// Command token mints an access token for an existing user id using the
// server's secret key and token lifetime. Login flows live outside choki,
// so this is how local clients and smoke tests obtain a bearer token.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/yeojiphap/choki/internal/flagx"
	"github.com/yeojiphap/choki/internal/server/auth"
	"github.com/yeojiphap/choki/internal/server/config"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	userID := fs.Int64("u", 0, "user id to issue the token for")
	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-u"})); err != nil {
		log.Fatalf("%v", err)
	}
	if *userID <= 0 {
		log.Fatalf("-u must be a positive user id")
	}

	token, err := auth.GenerateToken(*userID, []byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)
	if err != nil {
		log.Fatalf("token error: %v", err)
	}

	fmt.Println(token)
}
