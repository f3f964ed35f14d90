package dto

type VerifyInput struct {
	ProfileID  string
	Method     string
	Credential string
}

type VerifyOutput struct {
	Verified bool
	Identity string
}

type SetCodeInput struct {
	ProfileID string
	Code      string
}

type DoctorResult struct {
	CodesEnabled    bool
	PluginEnabled   bool
	BinaryReachable bool
	ChecksumValid   bool
	LifecycleOK     bool
	Name            string
	Version         string
	Methods         []string
	Error           string
}
