package tools

// MIME type constant.
const MimeJSON = "application/json"
