package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/user"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/net/context"
	"golang.org/x/oauth2"
)

var errNoToken = errors.New("no calendar token, run with -oauth")

// calendarClient loads the cached token and builds an authorized client.
// With prompt set a missing token is fetched interactively and cached.
func calendarClient(ctx context.Context, config *oauth2.Config, prompt bool) (*http.Client, error) {
	logger := &ThreadLogger{name: "Calendar"}
	cacheFile, err := tokenCacheFile()
	if err != nil {
		return nil, errors.Wrap(err, "token cache path")
	}
	tok, err := tokenFromFile(cacheFile)
	if err != nil {
		if !prompt {
			return nil, errors.WithMessage(errNoToken, err.Error())
		}
		if tok, err = tokenFromWeb(ctx, config); err != nil {
			return nil, err
		}
		if err = saveToken(cacheFile, tok); err != nil {
			return nil, err
		}
	} else if prompt {
		logger.Println("valid token in " + cacheFile)
	}
	return config.Client(ctx, tok), nil
}

func tokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	fmt.Printf("Go to the following link in your browser then type the "+
		"authorization code: \n%v\n", config.AuthCodeURL("state-token", oauth2.AccessTypeOffline))

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, errors.Wrap(err, "read authorization code")
	}
	tok, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "token exchange")
	}
	return tok, nil
}

func tokenCacheFile() (string, error) {
	usr, err := user.Current()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(usr.HomeDir, ".credentials")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dir, url.QueryEscape("tm8.json")), nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(t); err != nil {
		return nil, errors.Wrapf(err, "decode %s", file)
	}
	return t, nil
}

func saveToken(file string, token *oauth2.Token) error {
	(&ThreadLogger{name: "Calendar"}).Printf("saving token to %s", file)
	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrap(err, "cache token")
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
