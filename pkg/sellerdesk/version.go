package sellerdesk

const Version = "0.1.0"
