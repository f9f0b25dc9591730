package model

import (
	"time"

	"github.com/superapp-lab/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertShortUser(user *entity.User) ShortUser {
	if user == nil {
		return ShortUser{}
	}

	return ShortUser{
		ID:        user.ID,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		Status:    string(user.Status),
	}
}

func ConvertUser(user *entity.User, includeSensitive bool) User {
	if user == nil {
		return User{}
	}

	email := ""
	if includeSensitive {
		email = user.Email
	}

	return User{
		ShortUser:  ConvertShortUser(user),
		Email:      email,
		Bio:        user.Bio,
		Coins:      user.Coins,
		Rating:     user.Rating,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertPost(post *entity.Post, author *entity.User, liked bool) Post {
	if post == nil {
		return Post{}
	}

	return Post{
		ID:        post.ID,
		Author:    ConvertShortUser(author),
		Content:   post.Content,
		ImageURL:  post.ImageURL,
		Likes:     post.Likes,
		Comments:  post.Comments,
		Liked:     liked,
		CreatedAt: post.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertComment(comment *entity.Comment, author *entity.User) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Author:    ConvertShortUser(author),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertMessage(msg *entity.Message) Message {
	if msg == nil {
		return Message{}
	}

	return Message{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Content:        msg.Content,
		IsRead:         msg.IsRead,
		CreatedAt:      msg.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertNotification(n *entity.Notification, actor *entity.User) Notification {
	if n == nil {
		return Notification{}
	}

	return Notification{
		ID:            n.ID,
		Actor:         ConvertShortUser(actor),
		Type:          string(n.Type),
		ReferenceID:   n.ReferenceID,
		ReferenceType: n.ReferenceType,
		Message:       n.Message,
		IsRead:        n.IsRead,
		CreatedAt:     n.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertGift(gift *entity.Gift, sender, receiver *entity.User) Gift {
	if gift == nil {
		return Gift{}
	}

	return Gift{
		ID:        gift.ID,
		Sender:    ConvertShortUser(sender),
		Receiver:  ConvertShortUser(receiver),
		PostID:    gift.PostID.String,
		Amount:    gift.Amount,
		GiftType:  gift.GiftType,
		CreatedAt: gift.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertTransaction(tx *entity.Transaction) Transaction {
	if tx == nil {
		return Transaction{}
	}

	return Transaction{
		ID:            tx.ID,
		Type:          string(tx.Type),
		Amount:        tx.Amount,
		ReferenceID:   tx.ReferenceID,
		ReferenceType: tx.ReferenceType,
		CreatedAt:     tx.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertInvestment(inv *entity.Investment) Investment {
	if inv == nil {
		return Investment{}
	}

	return Investment{
		ID:         inv.ID,
		TargetType: inv.TargetType,
		TargetID:   inv.TargetID,
		TargetName: inv.TargetName,
		Amount:     inv.Amount,
		ReturnRate: inv.ReturnRate,
		Status:     string(inv.Status),
		CreatedAt:  inv.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertGame(game *entity.Game) Game {
	if game == nil {
		return Game{}
	}

	return Game{
		ID:          game.ID,
		Name:        game.Name,
		Category:    game.Category,
		Description: game.Description,
		MinEntryFee: game.MinEntryFee,
		Players:     game.Players,
	}
}

func ConvertTournament(t *entity.Tournament, joined bool) Tournament {
	if t == nil {
		return Tournament{}
	}

	return Tournament{
		ID:             t.ID,
		GameID:         t.GameID,
		Name:           t.Name,
		EntryFee:       t.EntryFee,
		PrizePool:      t.PrizePool,
		MaxPlayers:     t.MaxPlayers,
		CurrentPlayers: t.CurrentPlayers,
		StartsAt:       t.StartsAt.Format(DefaultTimeLayout),
		EndsAt:         t.EndsAt.Format(DefaultTimeLayout),
		Status:         string(t.Status),
		Joined:         joined,
	}
}

func ConvertTournamentEntry(e *entity.TournamentEntry, user *entity.User) TournamentEntry {
	if e == nil {
		return TournamentEntry{}
	}

	return TournamentEntry{
		TournamentID: e.TournamentID,
		User:         ConvertShortUser(user),
		Score:        e.Score,
		JoinedAt:     e.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertPlugin(p *entity.Plugin, installed bool) Plugin {
	if p == nil {
		return Plugin{}
	}

	return Plugin{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		AuthorID:    p.AuthorID.String,
		Price:       p.Price,
		Downloads:   p.Downloads,
		Rating:      p.Rating,
		Installed:   installed,
	}
}
