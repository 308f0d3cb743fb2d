package penrose

// Version is the release of the penrose module.
const Version = "0.4.0"
