package sdk

// Version is the SDK release version, stamped into the default User-Agent.
const Version = "0.1.0"

const defaultUserAgent = "bloomify-sdk/" + Version
