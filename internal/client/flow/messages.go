package flow

// User-facing copy.
const (
	MsgRateLimited        = "Too many attempts. Please wait a few minutes."
	MsgAlreadyRegistered  = "Email already registered. Try logging in instead."
	MsgCodeExpired        = `Kode kadaluarsa. Klik "Kirim ulang kode" di bawah.`
	MsgCodeUsed           = "Kode sudah digunakan. Silakan minta kode baru."
	MsgWrongCode          = "Kode verifikasi salah. Silakan coba lagi."
	MsgIncompleteCode     = "Mohon masukkan 6 digit kode"
	MsgResendFailed       = "Gagal mengirim ulang kode"
	MsgCodeResent         = "Kode baru telah dikirim."
	MsgLinkExpired        = "Link kadaluarsa / expired. Request a new link."
	MsgLinkInvalid        = "Invalid or expired link"
	MsgMagicLinkSent      = "Check your email. The link expires in 10 minutes."
	MsgNoToken            = "No token provided"
	MsgInvalidCredentials = "Invalid email or password. Please try again."
	MsgGoogleFailed       = "Google authentication failed. Please try again."
	MsgInvalidEmail       = "Please enter a valid email address."
	MsgPasswordTooShort   = "Password must be at least 8 characters"
	MsgPasswordRequired   = "Please enter your password."
	MsgNameRequired       = "Please enter your full name."
	MsgInvalidBirthday    = "Invalid birthday format. Please select a valid date."
	MsgReenterPassword    = "Enter your password again to receive a new code."
	MsgProfileLoadFailed  = "Signed in, but your profile could not be loaded. Please sign in again."
	MsgCodeSentTo         = "We sent a 6-digit code to %s"
	MsgSignedIn           = "Signed in. Redirecting..."
)
