package main

import (
	"rolegate/bizerror"
	"rolegate/federation"
	"rolegate/infra/tracing"
	"rolegate/persistence"
	"rolegate/servehttp"
	"rolegate/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.Infoln("service start")

	storeConfig, err := persistence.ParseStoreConfigFromEnv()
	if err != nil {
		logrus.Fatalf("parse store config failed %v\n", err)
	}
	federation.IndexPrefix = storeConfig.IndexPrefix

	bundle := &persistence.StoreBundle{StoreConfig: storeConfig}
	if err := bundle.Start(); err != nil {
		logrus.Fatalf("store connection failed %v\n", err)
	}
	defer bundle.Stop()
	persistence.ActiveStoreBundle = bundle

	engine := gin.New()
	engine.Use(gin.Recovery(), tracing.TracingIngress(), bizerror.ErrorHandling())

	engine.GET("/", func(c *gin.Context) {
		c.String(200, "rolegate")
	})

	servehttp.RegisterRoleHandler(engine, session.TenantFilter())
	servehttp.RegisterPermissionHandler(engine, session.TenantFilter())

	servehttp.StartHTTPServer(engine)
}
