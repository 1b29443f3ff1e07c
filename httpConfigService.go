package main

import (
	"net/http"

	"golang.org/x/net/context"
)

type httpStatusService struct {
	srv *http.Server
}

func (h *httpStatusService) launch(handler *APIHandler, addr string) {
	h.srv = &http.Server{Addr: addr, Handler: newStatusRouter(handler)}
	srv := h.srv
	logger := handler.rt.logger

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Println("starting status http server")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Println(err.Error())
		}
		logger.Println("exiting status http server")
	}()
}

func (h *httpStatusService) stop() {
	if h.srv != nil {
		h.srv.Shutdown(context.Background())
	}
}
