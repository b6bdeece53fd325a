package router

import (
	"github.com/labstack/echo/v4"

	analyticsCtrl "greenlands/pkg/analytics/controllerImp"
	authController "greenlands/pkg/auth/controller"
	commCtrl "greenlands/pkg/communication/controllerImp"
	farmerCtrl "greenlands/pkg/farmer/controllerImp"
	financeCtrl "greenlands/pkg/finance/controllerImp"
	govCtrl "greenlands/pkg/government/controllerImp"
	healthCtrl "greenlands/pkg/health/controllerImp"
	landController "greenlands/pkg/land/controller"
	"greenlands/pkg/middleware"
	"greenlands/pkg/policy"
	subsidyCtrl "greenlands/pkg/subsidy/controllerImp"
	"greenlands/pkg/token"
)

type Controllers struct {
	Auth          authController.AuthController
	Land          landController.LandController
	Farmer        *farmerCtrl.FarmerCtrl
	Government    *govCtrl.GovernmentCtrl
	Analytics     *analyticsCtrl.AnalyticsCtrl
	Finance       *financeCtrl.FinanceCtrl
	Subsidy       *subsidyCtrl.SubsidyCtrl
	Communication *commCtrl.CommCtrl
	Health        *healthCtrl.HealthCtrl
}

// New mounts every route under /api with its policy-table gate. The gate
// order is fixed: authenticate, then authorize by role, then the handler's
// own ownership checks.
func New(e *echo.Echo, tm *token.Manager, c Controllers) *echo.Echo {
	api := e.Group("/api")

	api.GET("/health", c.Health.Health) // no auth, liveness probe

	// auth
	auth := api.Group("/auth")
	auth.POST("/register", c.Auth.Register)
	auth.POST("/login", c.Auth.Login)
	authed := auth.Group("", middleware.RequireAuth(tm))
	authed.GET("/me", c.Auth.Me)
	authed.PUT("/profile", c.Auth.UpdateProfile)
	authed.GET("/policy", c.Auth.Policy)

	// land
	landRead := api.Group("/land", middleware.RequireAuth(tm), middleware.RequireRoles(policy.RouteLandRead))
	landRead.GET("", c.Land.List)
	landRead.GET("/:id", c.Land.Get)
	landRead.GET("/farmer/:farmerId", c.Land.ByFarmer)
	landRead.GET("/stats/summary", c.Analytics.LandSummary)
	landWrite := api.Group("/land", middleware.RequireAuth(tm), middleware.RequireRoles(policy.RouteLandWrite))
	landWrite.POST("", c.Land.Create)
	landWrite.PUT("/:id", c.Land.Update)
	landWrite.DELETE("/:id", c.Land.Delete)

	// farmers
	farmersRead := api.Group("/farmers", middleware.RequireAuth(tm), middleware.RequireRoles(policy.RouteFarmersRead))
	farmersRead.GET("", c.Farmer.List)
	farmersRead.GET("/:id", c.Farmer.Get)
	farmersRead.GET("/location/:location", c.Farmer.ByLocation)
	farmersRead.GET("/stats/summary", c.Analytics.Farmers)
	farmersMut := api.Group("/farmers", middleware.RequireAuth(tm), middleware.RequireRoles(policy.RouteFarmersMutate))
	farmersMut.PUT("/:id", c.Farmer.Update)
	farmersMut.POST("/:id/crops", c.Farmer.AddCrop)
	farmersMut.DELETE("/:id/crops/:crop", c.Farmer.RemoveCrop)
	farmersMut.POST("/:id/equipment", c.Farmer.AddEquipment)
	farmersMut.GET("/:id/report", c.Farmer.Report)

	// government
	govRead := api.Group("/government", middleware.RequireAuth(tm), middleware.RequireRoles(policy.RouteGovernmentRead))
	govRead.GET("", c.Government.List)
	govRead.GET("/:id", c.Government.Get)
	govRead.GET("/department/:department", c.Government.ByDepartment)
	govRead.GET("/stats/summary", c.Analytics.Government)
	govMut := api.Group("/government", middleware.RequireAuth(tm), middleware.RequireRoles(policy.RouteGovernmentEdit))
	govMut.PUT("/:id", c.Government.Update)
	govPerm := api.Group("/government", middleware.RequireAuth(tm), middleware.RequireRoles(policy.RoutePermissions))
	govPerm.POST("/:id/permissions", c.Government.AddPermission)
	govPerm.DELETE("/:id/permissions/:permission", c.Government.RemovePermission)

	// analytics
	an := api.Group("/analytics", middleware.RequireAuth(tm), middleware.RequireRoles(policy.RouteAnalytics))
	an.GET("", c.Analytics.Overview)
	an.GET("/land", c.Analytics.Land)
	an.GET("/farmers", c.Analytics.Farmers)
	an.GET("/government", c.Analytics.Government)
	an.GET("/trends", c.Analytics.Trends)
	an.GET("/reports", c.Analytics.Reports)

	// communication
	comm := api.Group("/communication", middleware.RequireAuth(tm))
	msgs := comm.Group("", middleware.RequireRoles(policy.RouteMessaging))
	msgs.GET("/messages", c.Communication.ListMessages)
	msgs.POST("/messages", c.Communication.SendMessage)
	msgs.GET("/messages/:id", c.Communication.GetMessage)
	msgs.PUT("/messages/:id/read", c.Communication.MarkMessageRead)
	msgs.DELETE("/messages/:id", c.Communication.DeleteMessage)
	msgs.GET("/contacts", c.Communication.Contacts)
	msgs.GET("/messages/notifications", c.Communication.MessageNotifications)
	msgs.GET("/announcements", c.Communication.Announcements)
	comm.POST("/support", c.Communication.CreateSupport, middleware.RequireRoles(policy.RouteSupportCreate))
	supp := comm.Group("", middleware.RequireRoles(policy.RouteSupportManage))
	supp.GET("/support", c.Communication.ListSupport)
	supp.PUT("/support/:id", c.Communication.UpdateSupport)
	supp.GET("/support/notifications", c.Communication.SupportNotifications)
	supp.GET("/ws", c.Communication.WS)

	// subsidies
	sub := api.Group("/subsidies", middleware.RequireAuth(tm), middleware.RequireRoles(policy.RouteSubsidies))
	sub.GET("", c.Subsidy.List)
	sub.POST("/apply", c.Subsidy.Apply)
	subImport := api.Group("/subsidies", middleware.RequireAuth(tm), middleware.RequireRoles(policy.RouteSubsidyImport))
	subImport.POST("/import", c.Subsidy.Import)

	// finance
	fin := api.Group("/finance", middleware.RequireAuth(tm), middleware.RequireRoles(policy.RouteFinance))
	fin.GET("/report", c.Finance.Report)
	fin.POST("/transactions", c.Finance.CreateTransaction)

	return e
}
