package daemon

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ajmccaus/touch-timeout/pkg/config"
	"github.com/ajmccaus/touch-timeout/pkg/version"
)

// apiServer exposes the daemon over its unix socket. Handlers never touch
// the state machine directly; mutations travel through channels into the
// event loop, which owns all mutable state.
type apiServer struct {
	cfg        *config.Config
	tracker    *tracker
	wake       chan<- struct{}
	brightness chan<- int
}

func (s *apiServer) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/status", s.getStatus)
	router.GET("/config", s.getConfig)
	router.POST("/wake", s.postWake)
	router.GET("/brightness", s.getBrightness)
	router.PUT("/brightness", s.putBrightness)
	router.GET("/version", s.getVersion)

	return router
}

func (s *apiServer) getStatus(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, s.tracker.Status())
}

func (s *apiServer) getConfig(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, config.RawFromConfig(s.cfg))
}

func (s *apiServer) postWake(c *gin.Context) {
	select {
	case s.wake <- struct{}{}:
	default:
		// A wake is already pending; arriving first is as good as arriving
		// twice.
	}
	c.IndentedJSON(http.StatusOK, "display waking")
}

func (s *apiServer) getBrightness(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, s.tracker.FullBrightness())
}

func (s *apiServer) putBrightness(c *gin.Context) {
	var v int
	if err := c.BindJSON(&v); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	max := s.tracker.Status().MaxBrightness
	if v < config.MinBrightness || v > max {
		err := fmt.Errorf("brightness must be between %d and %d, got %d",
			config.MinBrightness, max, v)
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	// Never park this goroutine on the loop: during shutdown nobody drains
	// the channel and a blocking send would leak the handler.
	select {
	case s.brightness <- v:
	default:
		c.IndentedJSON(http.StatusServiceUnavailable, "daemon busy, try again")
		return
	}
	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("set full brightness to %d", v))
}

func (s *apiServer) getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
