package client

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/brandlens/photogen/common/config"
	"github.com/brandlens/photogen/common/logger"
)

var HTTPClient *http.Client
var ImpatientHTTPClient *http.Client
var UserContentRequestHTTPClient *http.Client

func Init() {
	if config.UserContentProxy != "" {
		logger.SysLog(fmt.Sprintf("using %s as proxy to fetch user content", config.UserContentProxy))
		proxyURL, err := url.Parse(config.UserContentProxy)
		if err != nil {
			logger.FatalLog(fmt.Sprintf("USER_CONTENT_REQUEST_PROXY set but invalid: %s", config.UserContentProxy))
		}
		UserContentRequestHTTPClient = &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyURL(proxyURL),
			},
			Timeout: time.Second * time.Duration(config.UserContentTimeout),
		}
	} else {
		UserContentRequestHTTPClient = &http.Client{
			Timeout: time.Second * time.Duration(config.UserContentTimeout),
		}
	}

	var transport http.RoundTripper
	if config.RelayProxy != "" {
		logger.SysLog(fmt.Sprintf("using %s as api relay proxy", config.RelayProxy))
		proxyURL, err := url.Parse(config.RelayProxy)
		if err != nil {
			logger.FatalLog(fmt.Sprintf("RELAY_PROXY set but invalid: %s", config.RelayProxy))
		}
		transport = &http.Transport{
			Proxy: http.ProxyURL(proxyURL),
		}
	}

	// the per-call deadline is enforced with a context by the orchestrator,
	// so the relay client itself carries no timeout
	HTTPClient = &http.Client{
		Transport: transport,
	}

	ImpatientHTTPClient = &http.Client{
		Timeout:   5 * time.Second,
		Transport: transport,
	}
}
