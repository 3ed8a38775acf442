package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/echnavi/charge-admin-backend/api/controllers"
	"github.com/echnavi/charge-admin-backend/api/middleware"
	"github.com/echnavi/charge-admin-backend/internal/agencies"
	"github.com/echnavi/charge-admin-backend/internal/charges"
	"github.com/echnavi/charge-admin-backend/internal/corporates"
	"github.com/echnavi/charge-admin-backend/internal/identity"
	"github.com/echnavi/charge-admin-backend/internal/permissions"
	"github.com/echnavi/charge-admin-backend/internal/powersupplies"
	"github.com/echnavi/charge-admin-backend/internal/stations"
	"github.com/echnavi/charge-admin-backend/internal/users"
	"github.com/echnavi/charge-admin-backend/pkg/config"
	"github.com/echnavi/charge-admin-backend/pkg/db"
	"github.com/echnavi/charge-admin-backend/pkg/logger"
	"github.com/echnavi/charge-admin-backend/pkg/metrics"
	"github.com/echnavi/charge-admin-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbc *db.Client,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	identityService *identity.Service,
	agencyService *agencies.Service,
	corporateService *corporates.Service,
	userService *users.Service,
	stationService *stations.Service,
	powerSupplyService *powersupplies.Service,
	chargeService *charges.Service,
	permissionService *permissions.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if httpMetrics != nil {
		r.Use(middleware.Metrics(httpMetrics))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginPhoneLimit,
	)
	authGuard := func(next http.Handler) http.Handler { return next }
	if redisClient != nil {
		authGuard = middleware.AuthRateLimit(loginPolicy, redisClient, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbc, redisClient, logg))
	})
	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/dashb", func(r chi.Router) {
		r.Get("/user", controllers.Hello())

		r.With(authGuard).Post("/login", controllers.AdminLogin(identityService, logg))
		r.With(authGuard).Post("/admin_user_login", controllers.AdminResetCheck(identityService, logg))
		r.With(authGuard).Post("/agency_user_login", controllers.AgencyUserLogin(identityService, logg))
		r.With(authGuard).Post("/corporate_user_login", controllers.CorporateUserLogin(identityService, logg))
		r.With(authGuard).Post("/agency_user_sms", controllers.AgencyUserSMS(identityService, logg))

		r.Post("/agency_register", controllers.AgencyRegister(agencyService, logg))
		r.Post("/agency_get_companies", controllers.AgencyGetCompanies(agencyService, logg))
		r.Post("/agency_update_company", controllers.AgencyUpdateCompany(agencyService, logg))

		r.Post("/corporate_register", controllers.CorporateRegister(corporateService, logg))
		r.Post("/corporate_get_companies", controllers.CorporateGetCompanies(corporateService, logg))
		r.Post("/corporate_update_company", controllers.CorporateUpdateCompany(corporateService, logg))

		r.Post("/individual_get_users", controllers.IndividualGetUsers(userService, logg))
		r.Post("/individual_update_user", controllers.IndividualUpdateUser(userService, logg))
		r.Post("/admin_create_agency_user", controllers.AdminCreateAgencyUser(userService, logg))

		r.Post("/agency_get_users", controllers.AgencyGetUsers(userService, logg))
		r.Post("/agency_update_user", controllers.AgencyUpdateUser(userService, logg))
		r.Post("/agency_user_register", controllers.AgencyUserRegister(userService, logg))

		r.Post("/corporate_get_users", controllers.CorporateGetUsers(userService, logg))
		r.Post("/corporate_update_user", controllers.CorporateUpdateUser(userService, logg))
		r.Post("/corporate_user_register", controllers.CorporateUserRegister(userService, logg))

		r.Post("/get_stations", controllers.GetStations(stationService, logg))
		r.Post("/station_register", controllers.StationRegister(stationService, logg))
		r.Post("/update_station", controllers.UpdateStation(stationService, logg))

		r.Post("/get_powersupplies", controllers.GetPowerSupplies(powerSupplyService, logg))
		r.Post("/powersupply_register", controllers.PowerSupplyRegister(powerSupplyService, logg))
		r.Post("/update_powersupply", controllers.UpdatePowerSupply(powerSupplyService, logg))
		r.Post("/update_charge_fee", controllers.UpdateChargeFee(powerSupplyService, logg))
		r.Post("/qr_powersupply_info", controllers.QRPowerSupplyInfo(powerSupplyService, logg))

		r.Post("/get_charge_history", controllers.GetChargeHistory(chargeService, logg))
		r.Post("/get_unpaid_history", controllers.GetUnpaidHistory(chargeService, logg))
		r.Post("/download_history", controllers.DownloadHistory(chargeService, logg))

		r.Post("/get_permission", controllers.GetPermission(permissionService, logg))
	})

	return r
}
