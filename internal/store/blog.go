package store

import (
	"context"

	"whalink/internal/constants"
	"whalink/internal/models"
)

// BlogPosts returns a snapshot copy of the static article set.
func (s *Store) BlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	if err := s.simulate(ctx, constants.BlogDelay); err != nil {
		return nil, err
	}

	out := make([]models.BlogPost, len(blogPosts))
	copy(out, blogPosts)
	return out, nil
}

// BlogPost looks up one article by slug. A missing slug returns nil, not
// an error.
func (s *Store) BlogPost(ctx context.Context, slug string) (*models.BlogPost, error) {
	if err := s.simulate(ctx, constants.BlogDelay); err != nil {
		return nil, err
	}

	for _, p := range blogPosts {
		if p.Slug == slug {
			post := p
			return &post, nil
		}
	}
	return nil, nil
}

var blogPosts = []models.BlogPost{
	{
		ID:         "b1",
		Slug:       "whatsapp-automation-guide-2024",
		Title:      "The Ultimate Guide to WhatsApp Automation in 2024",
		Excerpt:    "Learn how to automate your customer support and sales processes using Whalink and n8n.",
		CoverImage: "https://images.unsplash.com/photo-1555421689-d68471e189f2?auto=format&fit=crop&q=80&w=800",
		Author:     "Sarah Johnson",
		Date:       "Oct 24, 2024",
		ReadTime:   "5 min read",
		Content: `
      <h2>Why Automate WhatsApp?</h2>
      <p>In today's fast-paced digital world, customers expect instant responses. Waiting hours for a reply can mean lost sales. Automation allows you to be there for your customers 24/7 without hiring a massive support team.</p>

      <h3>1. Instant Gratification</h3>
      <p>Automated welcome messages and quick replies ensure your customers feel heard immediately.</p>

      <h3>2. Order Tracking</h3>
      <p>Integrate with your e-commerce store (Shopify, WooCommerce) to send automatic order updates. "Your order #1234 has shipped!" messages have a 98% open rate compared to 20% for email.</p>

      <h3>3. Recover Abandoned Carts</h3>
      <p>Send a gentle reminder on WhatsApp for users who left items in their cart. Conversion rates on WhatsApp are significantly higher than email.</p>

      <h2>How Whalink Helps</h2>
      <p>Whalink provides the infrastructure to keep your WhatsApp session active 24/7 in the cloud. We handle the technical heavy lifting so you can focus on building flows.</p>
    `,
	},
	{
		ID:         "b2",
		Slug:       "stop-wasting-money-sms",
		Title:      "Stop Wasting Money on SMS: Why WhatsApp is the Future",
		Excerpt:    "SMS costs are rising while open rates are dropping. Discover why modern businesses are switching to WhatsApp.",
		CoverImage: "https://images.unsplash.com/photo-1563986768609-322da13575f3?auto=format&fit=crop&q=80&w=800",
		Author:     "Mike Chen",
		Date:       "Oct 20, 2024",
		ReadTime:   "4 min read",
		Content: `
      <h2>The Problem with SMS</h2>
      <p>SMS has been the standard for transactional messages for decades. But it has limitations:</p>
      <ul>
        <li>Cost per message is high</li>
        <li>Character limits</li>
        <li>No media support</li>
        <li>Lack of read receipts</li>
      </ul>

      <h2>Enter WhatsApp</h2>
      <p>WhatsApp offers rich media, unlimited length, location sharing, and most importantly, it's virtually free when using a session-based automation tool like Whalink.</p>

      <p>Stop burning your budget on SMS gateways. Switch to Whalink and send unlimited messages for a flat monthly fee.</p>
    `,
	},
	{
		ID:         "b3",
		Slug:       "n8n-whatsapp-integration",
		Title:      "Connecting n8n with WhatsApp: A Technical Deep Dive",
		Excerpt:    "A step-by-step tutorial on setting up a webhook to process incoming WhatsApp messages in n8n.",
		CoverImage: "https://images.unsplash.com/photo-1551288049-bebda4e38f71?auto=format&fit=crop&q=80&w=800",
		Author:     "Alex Dev",
		Date:       "Oct 15, 2024",
		ReadTime:   "8 min read",
		Content: `
      <h2>Prerequisites</h2>
      <p>You'll need a Whalink account and a self-hosted or cloud version of n8n.</p>

      <h3>Step 1: Create a Webhook in Whalink</h3>
      <p>Go to your Whalink Dashboard > Automations. Click "Add Webhook". Enter your n8n Production URL.</p>

      <h3>Step 2: Configure n8n Webhook Node</h3>
      <p>Set the HTTP Method to POST. Whalink sends the message payload in JSON format.</p>

      <h3>Step 3: Process Logic</h3>
      <p>Use a Switch node to check the message content. If it contains "price", query your database and return the price list.</p>
    `,
	},
}
