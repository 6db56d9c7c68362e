package utils

import "github.com/gin-gonic/gin"

// Cookie names the middleware and handlers read session tokens from.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// SetAuthCookies writes both session tokens as HttpOnly cookies scoped to
// the whole API.
func SetAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	writeCookie(c, AccessTokenCookie, accessToken, int(AccessTokenExpiry.Seconds()))
	writeCookie(c, RefreshTokenCookie, refreshToken, int(RefreshTokenExpiry.Seconds()))
}

// ClearAuthCookies expires both session cookies, ending the session on the
// client side.
func ClearAuthCookies(c *gin.Context) {
	writeCookie(c, AccessTokenCookie, "", -1)
	writeCookie(c, RefreshTokenCookie, "", -1)
}

func writeCookie(c *gin.Context, name, value string, maxAge int) {
	// Plain-HTTP cookies only in local dev.
	secure := gin.Mode() != gin.DebugMode
	c.SetCookie(name, value, maxAge, "/", "", secure, true)
}
