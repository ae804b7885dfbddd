package client

// Version is sent in the User-Agent header.
const Version = "0.3.0"
