package contacts

import (
	"fmt"
	"net/http"

	"pingpal/components/account"
	"pingpal/envelope"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/juju/ratelimit"
)

var Logger logr.Logger = logr.Discard()

type ContactRoute struct {
	contactController ContactController
	limiter           *ratelimit.Bucket
}

func NewContactRoute(l logr.Logger, limiter *ratelimit.Bucket, accountService account.I_AccountRepo) ContactRoute {
	Logger = l
	Logger.V(2).Info("NewContactRoute created")
	contactController := NewContactController(accountService)
	return ContactRoute{contactController, limiter}
}

func (me *ContactRoute) InitRouteTo(rg *gin.RouterGroup) {
	router := rg.Group("/contact")
	router.GET("/add", me.RateLimit, me.AddHandler)
	router.GET("/update", me.RateLimit, me.UpdateHandler)
	router.GET("/delete", me.RateLimit, me.DeleteHandler)
	router.GET("/invite", me.RateLimit, me.InviteHandler)
	router.GET("/invite/answer", me.RateLimit, me.AnswerHandler)
}

func (me *ContactRoute) RateLimit(ctx *gin.Context) {
	if me.limiter.TakeAvailable(1) == 0 {
		ctx.AbortWithStatus(http.StatusTooManyRequests)
		return
	}
	ctx.Next()
}

func reply(ctx *gin.Context, res *envelope.Response) {
	if !res.Ok() {
		Logger.Error(fmt.Errorf(res.Message), "response with error")
	}
	ctx.JSON(http.StatusOK, res)
}

func (me *ContactRoute) AddHandler(ctx *gin.Context) {
	res := me.contactController.AddContact(ctx.Query("account_id"), ctx.Query("friend_id"))
	reply(ctx, res)
}

func (me *ContactRoute) UpdateHandler(ctx *gin.Context) {
	res := me.contactController.UpdateContact(ctx.Query("account_id"), ctx.Query("friend_id"), ctx.Query("changes"))
	reply(ctx, res)
}

func (me *ContactRoute) DeleteHandler(ctx *gin.Context) {
	res := me.contactController.DeleteContact(ctx.Query("account_id"), ctx.Query("friend_id"))
	reply(ctx, res)
}

func (me *ContactRoute) InviteHandler(ctx *gin.Context) {
	res := me.contactController.InviteFriend(ctx.Query("account_id"), ctx.Query("friend_id"))
	reply(ctx, res)
}

func (me *ContactRoute) AnswerHandler(ctx *gin.Context) {
	accept := ctx.Query("accept") == "true" || ctx.Query("accept") == "1"
	res := me.contactController.AnswerInvite(ctx.Query("account_id"), ctx.Query("friend_id"), ctx.Query("invite_id"), accept)
	reply(ctx, res)
}
