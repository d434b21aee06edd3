package models

// Route is a client-side location the flow can send the user to.
type Route string

const (
	RouteNone               Route = ""
	RouteLogin              Route = "/login"
	RouteSignup             Route = "/signup"
	RouteSignupPassword     Route = "/signup/password"
	RouteSignupVerify       Route = "/signup/verify"
	RouteSignupProfile      Route = "/signup/profile"
	RouteAdminLogin         Route = "/admin/login"
	RouteAdminVerify        Route = "/admin/verify"
	RouteAdminDashboard     Route = "/dashboard/admin"
	RouteDeveloperDashboard Route = "/dashboard/developer"
)

// Step is a state of the identity-resolution flow.
type Step string

const (
	StepEmail         Step = "email"
	StepPassword      Step = "password"
	StepOTP           Step = "otp"
	StepProfile       Step = "profile"
	StepAdminLinkSent Step = "admin-link-sent"
	StepDone          Step = "done"
)

// FlowType tells the code verification step which backend call to make.
type FlowType string

const (
	FlowSignup FlowType = "signup"
	FlowLogin  FlowType = "login"
)
