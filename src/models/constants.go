package models

// TableAdminUsers is the table holding admin accounts
const TableAdminUsers = "admin_users"

// AdminTokenCookie is the cookie carrying the admin session token
const AdminTokenCookie = "admin_token"
