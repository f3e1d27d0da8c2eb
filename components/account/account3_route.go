package account

import (
	"fmt"
	"net/http"

	"pingpal/envelope"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/juju/ratelimit"
)

var Logger logr.Logger = logr.Discard()

type AccountRoute struct {
	accountController AccountController
	limiter           *ratelimit.Bucket
}

func NewAccountRoute(accountService I_AccountRepo, l logr.Logger, limiter *ratelimit.Bucket, roomService I_RoomFinder) AccountRoute {
	Logger = l
	Logger.V(2).Info("NewAccountRoute created")
	accountController := NewAccountController(accountService, roomService)
	return AccountRoute{accountController, limiter}
}

func (me *AccountRoute) GetAccountService() I_AccountRepo {
	return me.accountController.accountService
}

func (me *AccountRoute) InitRouteTo(rg *gin.RouterGroup) {
	router := rg.Group("/account")
	router.GET("/create", me.RateLimit, me.CreateHandler)
	router.GET("/change", me.RateLimit, me.ChangeHandler)
	router.GET("/info", me.RateLimit, me.InfoHandler)
	router.GET("/login", me.RateLimit, me.LoginHandler)
	router.GET("/find", me.RateLimit, me.FindHandler)
	router.GET("/list", me.RateLimit, me.ListHandler)
	router.GET("/storage/get", me.RateLimit, me.StorageGetHandler)
	router.GET("/storage/set", me.RateLimit, me.StorageSetHandler)
}

func (me *AccountRoute) RateLimit(ctx *gin.Context) {
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

func queryBool(ctx *gin.Context, key string) bool {
	v := ctx.Query(key)
	return v == "true" || v == "1"
}

func (me *AccountRoute) CreateHandler(ctx *gin.Context) {
	res := me.accountController.CreateAccount(ctx.Query("email"), ctx.Query("password"), ctx.Query("label"))
	reply(ctx, res)
}

func (me *AccountRoute) ChangeHandler(ctx *gin.Context) {
	res := me.accountController.ChangeAccount(ctx.Query("account_id"), ctx.Query("changes"))
	reply(ctx, res)
}

func (me *AccountRoute) InfoHandler(ctx *gin.Context) {
	res := me.accountController.AccountInfo(
		ctx.Query("account_id"),
		queryBool(ctx, "rooms"),
		queryBool(ctx, "flags"),
		queryBool(ctx, "friends"),
		queryBool(ctx, "invites"),
	)
	reply(ctx, res)
}

func (me *AccountRoute) LoginHandler(ctx *gin.Context) {
	res := me.accountController.Login(ctx.Query("token"))
	reply(ctx, res)
}

func (me *AccountRoute) FindHandler(ctx *gin.Context) {
	res := me.accountController.FindAccount(ctx.Query("email"), ctx.Query("label"))
	reply(ctx, res)
}

func (me *AccountRoute) ListHandler(ctx *gin.Context) {
	res := me.accountController.ListAccounts(ctx.Query("volume"))
	reply(ctx, res)
}

func (me *AccountRoute) StorageGetHandler(ctx *gin.Context) {
	res := me.accountController.StorageGet(ctx.Query("account_id"), ctx.Query("key"))
	reply(ctx, res)
}

func (me *AccountRoute) StorageSetHandler(ctx *gin.Context) {
	res := me.accountController.StorageSet(ctx.Query("account_id"), ctx.Query("key"), ctx.Query("value"))
	reply(ctx, res)
}
