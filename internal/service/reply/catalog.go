package reply

import "github.com/zhouzirui/codesoft-bot/backend/internal/analysis/intent"

// DefaultKey holds the replies used when no intent matched.
const DefaultKey intent.Name = "default"

// Catalog maps an intent to its candidate replies.
type Catalog map[intent.Name][]string

// Seed provides the stock replies for every known intent plus the fallback.
func Seed() Catalog {
	return Catalog{
		intent.Greeting: {
			"Hello! How can I assist you today?",
			"Hi there! What can I help you with?",
			"Hey! Welcome to codesoft Chatbot!",
		},
		intent.Hours: {
			"We're open from 9 AM to 6 PM, Monday through Friday!",
			"Our business hours are 9-6, Mon-Fri.",
		},
		intent.Pricing: {
			"Our prices vary by service. What specifically are you interested in?",
			"Pricing depends on the package. Could you tell me more?",
		},
		intent.Contact: {
			"Reach us at support@example.com or 1-800-555-1234.",
			"Contact us via email at support@example.com or call our hotline!",
		},
		intent.Goodbye: {
			"Goodbye! Have a great day!",
			"See you later! Take care!",
		},
		intent.ProductInfo: {
			"We offer various services like consulting, tech support, and more. What do you need?",
			"Our products range from software to hardware solutions. What's your interest?",
		},
		intent.Location: {
			"We're located at 123 Stellar Street, Tech City.",
			"Our main office is in Tech City at 123 Stellar Street.",
		},
		DefaultKey: {
			"I'm sorry, I didn't understand that. Could you please rephrase?",
			"Hmm, I'm not sure about that. Can you clarify?",
		},
	}
}
