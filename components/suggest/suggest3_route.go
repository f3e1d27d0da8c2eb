package suggest

import (
	"fmt"
	"net/http"

	"pingpal/components/account"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/juju/ratelimit"
)

var Logger logr.Logger = logr.Discard()

type SuggestRoute struct {
	engine  SuggestionEngine
	limiter *ratelimit.Bucket
}

func NewSuggestRoute(l logr.Logger, limiter *ratelimit.Bucket, accountService account.I_AccountRepo) SuggestRoute {
	Logger = l
	Logger.V(2).Info("NewSuggestRoute created")
	engine := NewSuggestionEngine(accountService)
	return SuggestRoute{engine, limiter}
}

func (me *SuggestRoute) InitRouteTo(rg *gin.RouterGroup) {
	router := rg.Group("/suggestions")
	router.GET("", me.RateLimit, me.GetHandler)
}

func (me *SuggestRoute) RateLimit(ctx *gin.Context) {
	if me.limiter.TakeAvailable(1) == 0 {
		ctx.AbortWithStatus(http.StatusTooManyRequests)
		return
	}
	ctx.Next()
}

func (me *SuggestRoute) GetHandler(ctx *gin.Context) {
	res := me.engine.ComputeSuggestions(ctx.Query("account_id"))
	if !res.Ok() {
		Logger.Error(fmt.Errorf(res.Message), "response with error")
	}
	ctx.JSON(http.StatusOK, res)
}
